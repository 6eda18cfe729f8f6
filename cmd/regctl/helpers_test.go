package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/registry"
)

const seedReg = "Windows Registry Editor Version 5.00\r\n" +
	"\r\n" +
	"[HKCU\\Software\\Acme]\r\n" +
	"@=\"default\"\r\n" +
	"\"Name\"=\"Widget\"\r\n" +
	"\"Count\"=dword:0000002a\r\n" +
	"\"Blob\"=hex:de,ad,be,ef\r\n" +
	"\"Paths\"=hex(7):61,00,00,00,62,00,00,00,00,00\r\n" +
	"\r\n" +
	"[HKCU\\Software\\Acme\\Plugins]\r\n" +
	"\"Enabled\"=dword:00000001\r\n" +
	"\r\n" +
	"[HKCU\\Software\\Acme\\Plugins\\Audio]\r\n" +
	"\r\n" +
	"[HKCU\\Software\\Acme\\Themes]\r\n"

// useMemory points the commands at a fresh memory registry loaded with
// seed, and resets every flag to its default.
func useMemory(t *testing.T, seed string, opts ...registry.Option) *registry.Registry {
	t.Helper()

	prev := reg
	reg = registry.Memory(opts...)
	t.Cleanup(func() { reg = prev })
	if seed != "" {
		require.NoError(t, registry.Import(reg, []byte(seed)))
	}

	verbose, quiet, jsonOut = false, false, false
	getShowType = false
	setType, setCreateKey = "sz", false
	keysRecursive, keysDepth, keysValues = false, 0, false
	deleteTree, deleteValue, deleteIsValue = false, "", false
	exportOutput, exportEncoding, exportBOM = "", "utf8", false
	scratchPrefix = "regctl-"
	return reg
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON and returns it decoded.
func assertJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
