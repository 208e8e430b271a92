package abcjson_test

import (
	"testing"

	"github.com/avm2/avm2/abc"
	"github.com/avm2/avm2/abcjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const classDoc = `{
	"majorVersion": 46,
	"minorVersion": 16,
	"pools": {
		"strings": ["boom"],
		"namespaces": [{"variant": "public", "uri": ""}],
		"multinames": [{"namespaces": [0], "local": "Greeter", "hasLocal": true}]
	},
	"scripts": [
		{
			"name": "main",
			"init": {"name": "script_init", "kind": "bytecode", "body": {"maxStack": 1, "maxLocals": 1, "code": [{"op": "returnvoid"}]}},
			"traits": [
				{
					"nameNamespace": 0, "nameLocal": "Greeter", "kind": "class",
					"class": {
						"name": "Greeter", "nameNamespace": 0,
						"instanceInit": {"name": "Greeter", "kind": "bytecode", "body": {"maxStack": 1, "maxLocals": 1, "code": [{"op": "returnvoid"}]}},
						"instanceTraits": [
							{"nameNamespace": 0, "nameLocal": "name", "kind": "slot", "slotIndex": 1, "type": "String"}
						],
						"classTraits": []
					}
				}
			]
		}
	]
}`

func TestDecodeBuildsScriptsAndClasses(t *testing.T) {
	file, err := abcjson.New().Decode([]byte(classDoc))
	require.NoError(t, err)
	require.Len(t, file.Scripts, 1)

	script := file.Scripts[0]
	assert.Equal(t, "main", script.Name)
	require.Len(t, script.Traits, 1)

	trait := script.Traits[0]
	assert.Equal(t, abc.ScriptTraitClass, trait.Kind)
	require.NotNil(t, trait.Class)
	assert.Equal(t, "Greeter", trait.Class.Instance.Name.Local)
	require.Len(t, trait.Class.Instance.InstanceTraits, 1)
	assert.Equal(t, "name", trait.Class.Instance.InstanceTraits[0].Name.Local)
	assert.Equal(t, "String", trait.Class.Instance.InstanceTraits[0].DeclaredType)
}

func TestDecodeRejectsUnknownNamespaceVariant(t *testing.T) {
	doc := `{"pools": {"namespaces": [{"variant": "bogus", "uri": ""}]}, "scripts": []}`
	_, err := abcjson.New().Decode([]byte(doc))
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownOpcodeMnemonic(t *testing.T) {
	doc := `{"scripts": [{"name": "main", "init": {"name": "init", "kind": "bytecode", "body": {"code": [{"op": "not_a_real_op"}]}}}]}`
	_, err := abcjson.New().Decode([]byte(doc))
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := abcjson.New().Decode([]byte("{not json"))
	assert.Error(t, err)
}
