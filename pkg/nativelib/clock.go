/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package nativelib

import (
	"time"

	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/vm"
)

// RegisterClock registers `clock()`, returning seconds since the Unix epoch
// as a Number (spec §6 names `clock` by name among the stdlib wrappers).
// This is the one native whose implementation is unavoidably stdlib-only: no
// third-party clock library appears anywhere in the example pack.
func RegisterClock(theVM *vm.VM) {
	theVM.RegisterNative("clock", func(args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.NumberValue(float64(time.Now().UnixNano()) / 1e9), nil
	}, 0, 0)
}
