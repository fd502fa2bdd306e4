/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package table implements the open-addressed, linear-probing hash table
// tlox uses for both string interning and the VM's global-variable store
// (spec §4.3). It is a deliberate alternative to Go's built-in map: tlox
// needs FindString (lookup by raw bytes + hash, before a string is even
// interned) and tombstone-aware deletion, neither of which map gives you.
package table

import "github.com/loxlang/tlox/pkg/bytecode"

const maxLoad = 0.75

// entry is one slot in the table: either empty (Key == nil, Value is the
// zero Value), a tombstone (Key == nil, Value is BoolValue(true)), or live
// (Key != nil).
type entry struct {
	Key   *bytecode.ObjString
	Value bytecode.Value
}

// Table is an open-addressed hash table keyed by interned *ObjString.
type Table struct {
	count   int // live entries plus tombstones
	entries []entry
}

// New creates an empty Table.
func New() *Table {
	return &Table{}
}

// Count reports the number of occupied slots: live entries plus tombstones
// (Delete does not lower it; only a rehash drops tombstones).
func (t *Table) Count() int {
	return t.count
}

// Get looks up key, returning its value and whether it was found.
func (t *Table) Get(key *bytecode.ObjString) (bytecode.Value, bool) {
	if len(t.entries) == 0 {
		return bytecode.Value{}, false
	}
	e := findEntry(t.entries, key)
	if e.Key == nil {
		return bytecode.Value{}, false
	}
	return e.Value, true
}

// Set stores value under key, growing the table first if needed. It
// reports whether this created a brand new key (as opposed to overwriting
// an existing one).
func (t *Table) Set(key *bytecode.ObjString, value bytecode.Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*maxLoad {
		t.adjustCapacity(growCapacity(len(t.entries)))
	}

	e := findEntry(t.entries, key)
	isNewKey := e.Key == nil
	if isNewKey && e.Value.Kind == bytecode.ValNull {
		t.count++
	}

	e.Key = key
	e.Value = value
	return isNewKey
}

// Delete removes key, leaving a tombstone behind so later probes that
// skipped over this slot still find their target. Reports whether key was
// present.
func (t *Table) Delete(key *bytecode.ObjString) bool {
	if len(t.entries) == 0 {
		return false
	}
	e := findEntry(t.entries, key)
	if e.Key == nil {
		return false
	}
	e.Key = nil
	e.Value = bytecode.BoolValue(true) // tombstone marker
	return true
}

// AddAll copies every live entry from t into dst.
func (t *Table) AddAll(dst *Table) {
	for i := range t.entries {
		if t.entries[i].Key != nil {
			dst.Set(t.entries[i].Key, t.entries[i].Value)
		}
	}
}

// FindString looks up a string by its raw content and precomputed hash,
// before it has been wrapped in an ObjString -- this is what makes string
// interning possible: the lexer/compiler can check "do we already have
// this string?" without allocating a candidate ObjString first.
func (t *Table) FindString(chars string, hash uint32) *bytecode.ObjString {
	if len(t.entries) == 0 {
		return nil
	}
	index := hash % uint32(len(t.entries))
	for {
		e := &t.entries[index]
		if e.Key == nil {
			if e.Value.Kind != bytecode.ValBool {
				return nil // truly empty, not a tombstone
			}
		} else if e.Key.Hash == hash && e.Key.Chars == chars {
			return e.Key
		}
		index = (index + 1) % uint32(len(t.entries))
	}
}

// findEntry performs the core linear-probing search used by Get/Set/Delete:
// it returns the slot that key occupies, or -- if key isn't present -- the
// first empty slot (preferring to reuse the earliest tombstone seen along
// the way) where it could be inserted.
func findEntry(entries []entry, key *bytecode.ObjString) *entry {
	index := key.Hash % uint32(len(entries))
	var tombstone *entry

	for {
		e := &entries[index]
		if e.Key == nil {
			if e.Value.Kind == bytecode.ValNull {
				if tombstone != nil {
					return tombstone
				}
				return e
			}
			if tombstone == nil {
				tombstone = e
			}
		} else if e.Key == key {
			return e
		}
		index = (index + 1) % uint32(len(entries))
	}
}

func growCapacity(capacity int) int {
	if capacity < 8 {
		return 8
	}
	return capacity * 2
}

// adjustCapacity grows the table to newCapacity, rehashing every live entry
// into the new backing array (tombstones are dropped in the process, which
// is also how their count gets reclaimed).
func (t *Table) adjustCapacity(newCapacity int) {
	newEntries := make([]entry, newCapacity)

	t.count = 0
	for i := range t.entries {
		e := &t.entries[i]
		if e.Key == nil {
			continue
		}
		dest := findEntry(newEntries, e.Key)
		dest.Key = e.Key
		dest.Value = e.Value
		t.count++
	}

	t.entries = newEntries
}
