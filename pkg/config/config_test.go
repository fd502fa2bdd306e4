/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadOverridesSelectively(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	contents := "debug_trace_execution = false\nprompt = \"tlox> \"\n"
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DebugTraceExecution {
		t.Error("expected debug_trace_execution to be overridden to false")
	}
	if !cfg.DebugPrintCode {
		t.Error("expected debug_print_code to keep its default of true")
	}
	if cfg.Prompt != "tlox> " {
		t.Errorf("got prompt %q, want \"tlox> \"", cfg.Prompt)
	}
}

func TestLoadMalformedFileReturnsError(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("not = [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected an error for malformed config")
	}
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	return func() { os.Chdir(old) }
}
