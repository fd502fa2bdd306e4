/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package bytecode defines the tlox value/object model (spec §3) and the
// bytecode Chunk format (spec §4.2), plus the disassembler used for debug
// tracing (spec §6).
package bytecode

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	ValNull ValueKind = iota
	ValBool
	ValNumber
	ValObj
)

// Value is a tagged scalar: exactly one of the four variants in ValueKind is
// meaningful at a time, selected by Kind. This mirrors the C original's
// tagged union (spec §3); NaN-boxing is a conformant alternative per §9, but
// isn't worth the unsafe-pointer games in Go.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Number float64
	Obj    Obj
}

// NullValue is the singleton null value.
var NullValue = Value{Kind: ValNull}

// BoolValue wraps a bool into a Value.
func BoolValue(b bool) Value {
	return Value{Kind: ValBool, Bool: b}
}

// NumberValue wraps a float64 into a Value.
func NumberValue(n float64) Value {
	return Value{Kind: ValNumber, Number: n}
}

// ObjValue wraps a heap Object into a Value.
func ObjValue(o Obj) Value {
	return Value{Kind: ValObj, Obj: o}
}

// IsFalsey reports whether v is falsey. Null and Bool(false) are falsey;
// everything else -- including Number(0) -- is truthy (spec §3).
func (v Value) IsFalsey() bool {
	switch v.Kind {
	case ValNull:
		return true
	case ValBool:
		return !v.Bool
	default:
		return false
	}
}

// IsObjKind reports whether v holds an object of the given ObjKind.
func (v Value) IsObjKind(k ObjKind) bool {
	return v.Kind == ValObj && v.Obj.ObjKind() == k
}

// String renders v the way `print` and the disassembler do (spec §6's
// print_value). This is also the format checked by the golden-output tests
// of spec §8.
func (v Value) String() string {
	switch v.Kind {
	case ValNull:
		return "null"
	case ValBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case ValObj:
		return v.Obj.objString()
	default:
		return fmt.Sprintf("<invalid value kind %d>", v.Kind)
	}
}

// ValuesEqual implements the equality rules of spec §3: values of differing
// kinds are never equal; numbers compare with Go's ==; strings compare by
// interned identity; other objects compare by identity.
func ValuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValNull:
		return true
	case ValBool:
		return a.Bool == b.Bool
	case ValNumber:
		return a.Number == b.Number
	case ValObj:
		if as, ok := a.Obj.(*ObjString); ok {
			bs, ok := b.Obj.(*ObjString)
			return ok && as == bs // interned: pointer equality suffices
		}
		return a.Obj == b.Obj
	default:
		return false
	}
}

//
// Objects
//

// ObjKind discriminates the variants of Obj.
type ObjKind int

const (
	ObjKindString ObjKind = iota
	ObjKindFunction
	ObjKindNative
)

// Obj is the interface implemented by every heap object variant (spec §3):
// String, Function, and Native. Ownership bookkeeping (the "next object"
// intrusive list the C original uses for bulk teardown) is deliberately kept
// out of this interface and lives instead in a Heap (see heap.go) owned by
// the VM -- per spec §9's redesign note, that bookkeeping must not leak into
// the public object types.
type Obj interface {
	ObjKind() ObjKind
	objString() string
}

// ObjString is an immutable, interned string. Two ObjStrings with equal
// contents are always the same pointer (spec §3's interning invariant),
// which is what makes identity comparison sufficient for string equality.
type ObjString struct {
	Chars string
	Hash  uint32
}

// ObjKind fulfills Obj.
func (*ObjString) ObjKind() ObjKind { return ObjKindString }

func (s *ObjString) objString() string { return s.Chars }

// ObjFunction is a compiled function: its arity, its bytecode Chunk, and an
// optional name (nil for the implicit top-level function).
type ObjFunction struct {
	Arity int
	Chunk *Chunk
	Name  *ObjString
}

// ObjKind fulfills Obj.
func (*ObjFunction) ObjKind() ObjKind { return ObjKindFunction }

func (f *ObjFunction) objString() string {
	if f.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name.Chars)
}

// NativeFn is the signature every native callable implements: given its
// arguments, it returns a Value or an error. The VM's call machinery
// translates a returned error into a runtime error (spec §4.6).
type NativeFn func(args []Value) (Value, error)

// ObjNative wraps a host function so it can be called like a tlox function.
// MinArity == MaxArity == -1 means "variadic, any arity" (spec §4.6).
type ObjNative struct {
	Name     string
	Fn       NativeFn
	MinArity int
	MaxArity int
}

// ObjKind fulfills Obj.
func (*ObjNative) ObjKind() ObjKind { return ObjKindNative }

func (n *ObjNative) objString() string {
	return fmt.Sprintf("<native fn %s>", n.Name)
}

// HashString computes the FNV-1a hash used to key interned strings (spec
// §4.3: "Strings carry a precomputed 32-bit FNV-1a hash").
func HashString(s string) uint32 {
	var hash uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= 16777619
	}
	return hash
}
