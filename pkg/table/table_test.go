/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package table

import (
	"testing"

	"github.com/loxlang/tlox/pkg/bytecode"
)

func str(s string) *bytecode.ObjString {
	return &bytecode.ObjString{Chars: s, Hash: bytecode.HashString(s)}
}

func TestTableSetAndGet(t *testing.T) {
	tbl := New()
	key := str("answer")

	isNew := tbl.Set(key, bytecode.NumberValue(42))
	if !isNew {
		t.Error("Set on a fresh key should report isNewKey = true")
	}

	v, ok := tbl.Get(key)
	if !ok {
		t.Fatal("Get should find the key just Set")
	}
	if v.Number != 42 {
		t.Errorf("Get() = %v, want 42", v)
	}
}

func TestTableOverwriteIsNotNew(t *testing.T) {
	tbl := New()
	key := str("x")
	tbl.Set(key, bytecode.NumberValue(1))

	isNew := tbl.Set(key, bytecode.NumberValue(2))
	if isNew {
		t.Error("Set on an existing key should report isNewKey = false")
	}
	v, _ := tbl.Get(key)
	if v.Number != 2 {
		t.Errorf("Get() = %v, want 2", v)
	}
}

func TestTableGetMissing(t *testing.T) {
	tbl := New()
	_, ok := tbl.Get(str("nope"))
	if ok {
		t.Error("Get on an empty table should report not found")
	}
}

func TestTableDeleteAndTombstoneProbing(t *testing.T) {
	tbl := New()
	a, b := str("a"), str("b")
	tbl.Set(a, bytecode.NumberValue(1))
	tbl.Set(b, bytecode.NumberValue(2))

	if !tbl.Delete(a) {
		t.Fatal("Delete should report true for a present key")
	}
	if tbl.Delete(a) {
		t.Error("Delete should report false the second time")
	}

	// b must still be reachable: a's tombstone must not break the probe
	// sequence for keys that hashed into the same bucket chain.
	v, ok := tbl.Get(b)
	if !ok || v.Number != 2 {
		t.Errorf("Get(b) after deleting a = (%v, %v), want (2, true)", v, ok)
	}
}

func TestTableAddAll(t *testing.T) {
	src, dst := New(), New()
	src.Set(str("x"), bytecode.NumberValue(1))
	src.Set(str("y"), bytecode.NumberValue(2))

	src.AddAll(dst)

	if dst.Count() != 2 {
		t.Errorf("Count() = %d, want 2", dst.Count())
	}
}

func TestTableFindString(t *testing.T) {
	tbl := New()
	key := str("hello")
	tbl.Set(key, bytecode.NumberValue(0))

	found := tbl.FindString("hello", bytecode.HashString("hello"))
	if found != key {
		t.Error("FindString should return the exact interned ObjString pointer")
	}

	notFound := tbl.FindString("goodbye", bytecode.HashString("goodbye"))
	if notFound != nil {
		t.Error("FindString should return nil for a string that was never interned")
	}
}

func TestTableGrows(t *testing.T) {
	tbl := New()
	for i := 0; i < 100; i++ {
		tbl.Set(str(string(rune('a'+i%26))+string(rune(i))), bytecode.NumberValue(float64(i)))
	}
	if tbl.Count() != 100 {
		t.Errorf("Count() = %d, want 100", tbl.Count())
	}
}
