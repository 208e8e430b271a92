package vm_test

import (
	"github.com/avm2/avm2/abc"
	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/opcodes"
	"github.com/avm2/avm2/registry"
)

// inst builds a single instruction, a small convenience shared by the
// hand-assembled ABC fixtures below (tests stand in for what a real ABC
// binary decoder would hand the VM, per spec §1/§6).
func inst(mnemonic string, operands ...int32) *opcodes.Instruction {
	op, ok := opcodes.Lookup(mnemonic)
	if !ok {
		panic("unknown opcode mnemonic: " + mnemonic)
	}
	return &opcodes.Instruction{Op: op, Operands: operands}
}

// bytecodeMethod wraps code as a zero-arg MethodBytecode MethodRef whose
// body's constant pools point at file.
func bytecodeMethod(name string, file *abc.File, maxStack, maxLocals int, code ...*opcodes.Instruction) *registry.MethodRef {
	return &registry.MethodRef{
		Name: name,
		Kind: registry.MethodBytecode,
		Body: &abc.MethodBodyData{
			MaxStack:  maxStack,
			MaxLocals: maxLocals,
			Code:      code,
			Pools:     file,
		},
	}
}

func publicNS() *names.Namespace { return names.NewNamespace(names.Public, "") }
