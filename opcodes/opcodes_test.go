package opcodes_test

import (
	"testing"

	"github.com/avm2/avm2/opcodes"
	"github.com/stretchr/testify/assert"
)

func TestLookupRoundTripsString(t *testing.T) {
	for _, mnemonic := range []string{"pushbyte", "findpropstrict", "callpropvoid", "returnvalue", "add", "ifstrictne"} {
		op, ok := opcodes.Lookup(mnemonic)
		assert.True(t, ok, "expected %q to resolve", mnemonic)
		assert.Equal(t, mnemonic, op.String())
	}
}

func TestLookupUnknownMnemonic(t *testing.T) {
	_, ok := opcodes.Lookup("not_a_real_opcode")
	assert.False(t, ok)
}

func TestUnknownOpCodeStringsAsUnknown(t *testing.T) {
	var bogus opcodes.OpCode = 0xfe
	assert.Equal(t, "unknown", bogus.String())
}

func TestIsBranchCoversControlFlowAndTerminators(t *testing.T) {
	branching := []opcodes.OpCode{
		opcodes.OpJump, opcodes.OpIfTrue, opcodes.OpIfFalse, opcodes.OpLookupSwitch,
		opcodes.OpReturnValue, opcodes.OpReturnVoid, opcodes.OpThrow,
	}
	for _, op := range branching {
		assert.True(t, op.IsBranch(), "%s should be a branch", op)
	}

	nonBranching := []opcodes.OpCode{opcodes.OpAdd, opcodes.OpPushByte, opcodes.OpCallPropVoid, opcodes.OpNop}
	for _, op := range nonBranching {
		assert.False(t, op.IsBranch(), "%s should not be a branch", op)
	}
}
