package vmfactory_test

import (
	"testing"

	"github.com/avm2/avm2/abcjson"
	"github.com/avm2/avm2/vmfactory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDoc = `{
	"scripts": [
		{"name": "main", "init": {"name": "script_init", "kind": "bytecode", "body": {"maxStack": 1, "maxLocals": 1, "code": [{"op": "returnvoid"}]}}, "traits": []}
	]
}`

func TestFactoryLoadBytesDecodesAndLoads(t *testing.T) {
	factory := vmfactory.New(func() vmfactory.ABCDecoder { return abcjson.New() })
	machine := factory.CreateVM()

	unit, err := factory.LoadBytes(machine, []byte(minimalDoc))
	require.NoError(t, err)
	require.Len(t, unit.Scripts(), 1)
	assert.True(t, unit.Scripts()[0].IsInitialized())
}

func TestFactoryLoadBytesWithoutDecoderFactory(t *testing.T) {
	factory := vmfactory.New(nil)
	machine := factory.CreateVM()

	_, err := factory.LoadBytes(machine, []byte(minimalDoc))
	assert.Error(t, err)
}

func TestFactoryLoadBytesPropagatesDecodeErrors(t *testing.T) {
	factory := vmfactory.New(func() vmfactory.ABCDecoder { return abcjson.New() })
	machine := factory.CreateVM()

	_, err := factory.LoadBytes(machine, []byte("{not json"))
	assert.Error(t, err)
}

var _ vmfactory.ABCDecoder = (*abcjson.Decoder)(nil)
