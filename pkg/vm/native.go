/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import "github.com/loxlang/tlox/pkg/bytecode"

// RegisterNative binds fn as a global named name, callable from tlox code
// with between minArity and maxArity arguments inclusive (spec §4.6). Passing
// -1 for both bounds means "variadic, any arity".
//
// The native is interned and tracked on the heap exactly like any other
// object the VM allocates, and bound into globals (not globalConsts) the same
// way OP_DEFINE_GLOBAL would -- so user code can shadow a native with its own
// global of the same name, just as it could with one defined in tlox itself.
func (vm *VM) RegisterNative(name string, fn bytecode.NativeFn, minArity, maxArity int) {
	native := &bytecode.ObjNative{
		Name:     name,
		Fn:       fn,
		MinArity: minArity,
		MaxArity: maxArity,
	}
	vm.heap.Track(native)

	key := vm.internString(name)
	vm.globals.Set(key, bytecode.ObjValue(native))
}
