package vm

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// DebugLevel gates how much diagnostic detail the trace sink emits,
// mirroring the teacher's vm.DebugLevel (vm/vm.go).
type DebugLevel byte

const (
	DebugLevelNone DebugLevel = iota
	DebugLevelBasic
	DebugLevelDetailed
)

// OutputBufferStack lets native code (chiefly the `trace()` global
// function) redirect writes into a capturable buffer instead of the VM's
// configured trace writer, the way the teacher's OutputBufferStack
// (vm/output_buffer.go) intercepts PHP's echo/print for ob_start()/
// ob_get_clean(). Nothing in this package pushes a buffer; while one is
// pushed, writeTrace appends to it instead of the trace writer.
type OutputBufferStack struct {
	buffers []*[]byte
}

func (s *OutputBufferStack) Push() {
	buf := make([]byte, 0, 64)
	s.buffers = append(s.buffers, &buf)
}

func (s *OutputBufferStack) Pop() string {
	if len(s.buffers) == 0 {
		return ""
	}
	top := s.buffers[len(s.buffers)-1]
	s.buffers = s.buffers[:len(s.buffers)-1]
	return string(*top)
}

func (s *OutputBufferStack) Active() bool { return len(s.buffers) > 0 }

func (s *OutputBufferStack) Write(p []byte) {
	top := s.buffers[len(s.buffers)-1]
	*top = append(*top, p...)
}

// writeTrace is the sink every native trace()/diagnostic call goes
// through: captured by an active output buffer if one exists, otherwise
// written straight to the VM's configured io.Writer.
func (vm *VM) writeTrace(s string) {
	if vm.outputBuffers.Active() {
		vm.outputBuffers.Write([]byte(s))
		vm.outputBuffers.Write([]byte("\n"))
		return
	}
	if vm.traceWriter == nil {
		return
	}
	fmt.Fprintln(vm.traceWriter, s)
}

// debugf emits a formatted diagnostic line gated by level. It formats its
// arguments with fmt only; the go-humanize rendering is done by callers
// such as describeActivationDepth.
func (vm *VM) debugf(level DebugLevel, format string, args ...interface{}) {
	if vm.debugLevel < level || vm.traceWriter == nil {
		return
	}
	fmt.Fprintf(vm.traceWriter, "[debug] "+format+"\n", args...)
}

// describeActivationDepth renders a human-friendly summary of the current
// call-stack depth, used by the REPL's `:stack` introspection command and
// DebugLevelDetailed tracing.
func describeActivationDepth(depth int) string {
	return fmt.Sprintf("depth=%s", humanize.Comma(int64(depth)))
}

// StackSummary exposes describeActivationDepth to callers outside this
// package (chiefly the REPL's `:stack` command).
func (vm *VM) StackSummary() string {
	return describeActivationDepth(vm.callDepth)
}
