/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package bytecode

import "testing"

func TestValueIsFalsey(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", NullValue, true},
		{"false", BoolValue(false), true},
		{"true", BoolValue(true), false},
		{"zero", NumberValue(0), false},
		{"negative", NumberValue(-1), false},
		{"string", ObjValue(&ObjString{Chars: ""}), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.IsFalsey(); got != c.want {
				t.Errorf("IsFalsey() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{NullValue, "null"},
		{BoolValue(true), "true"},
		{BoolValue(false), "false"},
		{NumberValue(3), "3"},
		{NumberValue(3.5), "3.5"},
		{ObjValue(&ObjString{Chars: "hi"}), "hi"},
		{ObjValue(&ObjFunction{Name: &ObjString{Chars: "f"}}), "<fn f>"},
		{ObjValue(&ObjFunction{}), "<script>"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestValuesEqual(t *testing.T) {
	s1 := &ObjString{Chars: "abc"}
	s2 := &ObjString{Chars: "abc"}

	if !ValuesEqual(NumberValue(1), NumberValue(1)) {
		t.Error("equal numbers should compare equal")
	}
	if ValuesEqual(NumberValue(1), NumberValue(2)) {
		t.Error("different numbers should not compare equal")
	}
	if ValuesEqual(NumberValue(1), BoolValue(true)) {
		t.Error("values of different kinds should never compare equal")
	}
	if ValuesEqual(ObjValue(s1), ObjValue(s2)) {
		t.Error("non-interned strings with equal contents should not compare equal by pointer identity")
	}
	if !ValuesEqual(ObjValue(s1), ObjValue(s1)) {
		t.Error("a string should equal itself")
	}
}

func TestHashStringDeterministic(t *testing.T) {
	if HashString("abc") != HashString("abc") {
		t.Error("HashString must be deterministic")
	}
	if HashString("abc") == HashString("abd") {
		t.Error("HashString should (overwhelmingly likely) differ for different inputs")
	}
}
