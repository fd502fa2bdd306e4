/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package config loads tlox's optional project configuration file,
// `.tloxrc.toml` (SPEC_FULL.md's AMBIENT STACK section), overriding the
// debug toggles spec §6 names (`debug_print_code`, `debug_trace_execution`)
// and the REPL prompt without requiring a recompile.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// fileName is the project configuration file tlox looks for in the current
// directory at startup.
const fileName = ".tloxrc.toml"

// Config holds the subset of tlox's process-wide settings that a project can
// override. The zero value has both debug toggles off and an empty prompt;
// Default returns spec §6's stated defaults instead.
type Config struct {
	DebugPrintCode      bool   `toml:"debug_print_code"`
	DebugTraceExecution bool   `toml:"debug_trace_execution"`
	Prompt              string `toml:"prompt"`
}

// Default returns the built-in defaults (spec §6: "Default: on in a debug
// build").
func Default() Config {
	return Config{
		DebugPrintCode:      true,
		DebugTraceExecution: true,
		Prompt:              "> ",
	}
}

// Load reads fileName from the current directory, overriding Default()'s
// fields with whatever the file sets. A missing file is not an error -- only
// a malformed one is (SPEC_FULL.md's AMBIENT STACK: "Silence (file absent)
// is not an error").
func Load() (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
