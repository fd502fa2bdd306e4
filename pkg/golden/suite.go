/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package golden

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/loxlang/tlox/pkg/errs"
)

// RunSuite runs every *.toml case file found recursively under root,
// printing one line per passing case, grounded on the teacher's
// ForEachMatchingFileRecursive-driven ExecuteSuite. It stops and reports the
// first failing case, matching the teacher's fail-fast behavior.
func RunSuite(root string) errs.Error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return errs.NewToolError("reading directory %v: %v", root, err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			if err := RunSuite(entryPath); err != nil {
				return err
			}
			continue
		}
		if filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		if err := RunCase(entryPath); err != nil {
			return errs.NewToolError("%v", err)
		}
		fmt.Printf("Test case passed: %v.\n", entryPath)
	}
	return nil
}
