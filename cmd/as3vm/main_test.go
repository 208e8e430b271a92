package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avm2/avm2/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalScriptDoc = `{
	"majorVersion": 46,
	"minorVersion": 16,
	"pools": {
		"namespaces": [{"variant": "public", "uri": ""}]
	},
	"scripts": [
		{
			"name": "main",
			"init": {
				"name": "script_init",
				"kind": "bytecode",
				"body": {
					"maxStack": 1,
					"maxLocals": 1,
					"code": [{"op": "returnvoid"}]
				}
			},
			"traits": []
		}
	]
}`

func TestLoadFileDecodesAndRegistersScripts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.json")
	require.NoError(t, os.WriteFile(path, []byte(minimalScriptDoc), 0o644))

	machine := vm.New()
	unit, err := loadFile(machine, path, true)
	require.NoError(t, err)
	assert.Len(t, unit.Scripts(), 1)
	assert.True(t, unit.Scripts()[0].IsInitialized())
}

func TestLoadFileMissingPath(t *testing.T) {
	machine := vm.New()
	_, err := loadFile(machine, "/nonexistent/as3vm-test-fixture.json", true)
	assert.Error(t, err)
}
