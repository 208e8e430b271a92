package vm

import (
	"strings"

	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/registry"
	"github.com/avm2/avm2/values"
)

// installGlobalNatives wires the handful of top-level native functions a
// freshly bootstrapped VM must expose even before any ABC is loaded —
// chiefly `trace()`, the AS3 equivalent of the teacher's builtin
// `echo`/`var_dump` output functions (registry/types.go's
// BuiltinFunction registration pass, run once out of runtime.Bootstrap).
// Installed as dynamic own-properties of the global object rather than
// instance traits, since the global object has no declaring ABC class —
// scope §4.3's findpropstrict walks the scope chain down to this object
// and finds them there, exactly as it would find traits.
func (vm *VM) installGlobalNatives() {
	vm.globalDomainObject.Dynamic = make(map[names.QName]*values.Value)

	vm.defineGlobalNative("trace", true, func(host *VM, this *Object, args []*values.Value) (*values.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.ToString(host)
		}
		host.writeTrace(strings.Join(parts, " "))
		return values.Undefined(), nil
	})
}

func (vm *VM) defineGlobalNative(name string, needsRest bool, fn NativeFunc) {
	ref := &registry.MethodRef{
		Name:      name,
		Kind:      registry.MethodNative,
		NeedsRest: needsRest,
		Body:      fn,
	}
	fnObj := NewClosure(vm, ref, nil)
	qn := names.NewQName(publicNS, name)
	vm.globalDomainObject.Dynamic[qn] = values.NewObject(fnObj)
	vm.globalDomainObject.dynamicOrder = append(vm.globalDomainObject.dynamicOrder, qn)
}
