// Package vmfactory assembles a *vm.VM with pre-wired ABC-loading
// callbacks, grounded on the teacher's VMFactory (vmfactory/factory.go):
// the same "inject the thing that builds bytecode so the core package
// never imports it" pattern, generalized from PHP's include()-triggered
// recompilation to AS3's Loader.loadBytes()-triggered ABC decoding.
package vmfactory

import (
	"fmt"

	"github.com/avm2/avm2/abc"
	"github.com/avm2/avm2/vm"
)

// ABCDecoder turns a raw ABC byte stream into a parsed abc.File. Defined
// as an interface (rather than importing a concrete decoder package) so
// vmfactory — and therefore vm — never needs to depend on whatever
// package eventually implements ABC parsing, avoiding the same class of
// import cycle the teacher's Compiler interface avoids for its AST
// compiler.
type ABCDecoder interface {
	Decode(data []byte) (*abc.File, error)
}

// DecoderFactory constructs a fresh ABCDecoder, injected rather than
// imported directly so vmfactory stays decoupled from any one decoder
// implementation (the teacher's CompilerFactory plays the same role for
// *compiler.Compiler).
type DecoderFactory func() ABCDecoder

// Factory builds VMs from a fixed option set and holds the decoder
// factory its LoadBytes method uses; the VMs it creates hold no
// reference to the decoder.
type Factory struct {
	decoderFactory DecoderFactory
	opts           []vm.Option
}

// New creates a Factory. decoderFactory may be nil if the caller never
// intends to use runtime ABC loading (e.g. tests that only call
// CreateVM and load a single pre-decoded abc.File directly via LoadABC).
func New(decoderFactory DecoderFactory, opts ...vm.Option) *Factory {
	return &Factory{decoderFactory: decoderFactory, opts: opts}
}

// CreateVM builds a *vm.VM with f's options applied. Runtime ABC loading
// into that VM goes through f.LoadBytes.
func (f *Factory) CreateVM() *vm.VM {
	return vm.New(f.opts...)
}

// LoadBytes decodes data via a freshly constructed decoder and loads the
// resulting translation unit into machine's global domain, eagerly
// initializing its scripts — the AS3-domain equivalent of the teacher's
// createCompilerCallback, which compiles and immediately executes an
// included file's bytecode in the caller's context.
func (f *Factory) LoadBytes(machine *vm.VM, data []byte) (*vm.TranslationUnit, error) {
	if f.decoderFactory == nil {
		return nil, fmt.Errorf("vmfactory: no ABCDecoder configured, cannot load bytes at runtime")
	}
	decoder := f.decoderFactory()
	file, err := decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("vmfactory: decode error: %w", err)
	}
	unit, err := machine.LoadABC(file, machine.GlobalDomain, true)
	if err != nil {
		return nil, fmt.Errorf("vmfactory: load error: %w", err)
	}
	return unit, nil
}
