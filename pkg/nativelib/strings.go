/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package nativelib

import (
	"fmt"
	"strings"

	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/vm"
)

// RegisterStringNatives registers str_len and str_upper. Both natives reject
// a non-string argument the same way `c-lox`'s std_library.c natives reject
// an arity mismatch: a plain error, surfaced by the VM's call machinery as a
// runtime error with the same "[line L] in <name>" stack trace any other
// runtime error gets.
func RegisterStringNatives(theVM *vm.VM) {
	theVM.RegisterNative("str_len", func(args []bytecode.Value) (bytecode.Value, error) {
		s, err := requireString(args[0], "str_len")
		if err != nil {
			return bytecode.Value{}, err
		}
		return bytecode.NumberValue(float64(len(s.Chars))), nil
	}, 1, 1)

	theVM.RegisterNative("str_upper", func(args []bytecode.Value) (bytecode.Value, error) {
		s, err := requireString(args[0], "str_upper")
		if err != nil {
			return bytecode.Value{}, err
		}
		return bytecode.ObjValue(theVM.InternString(strings.ToUpper(s.Chars))), nil
	}, 1, 1)
}

func requireString(v bytecode.Value, nativeName string) (*bytecode.ObjString, error) {
	if !v.IsObjKind(bytecode.ObjKindString) {
		return nil, fmt.Errorf("%s expected a string argument.", nativeName)
	}
	return v.Obj.(*bytecode.ObjString), nil
}
