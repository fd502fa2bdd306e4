/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package bytecode

// Heap tracks every Obj ever allocated by a running VM, in allocation order.
// Go's garbage collector makes the C original's manual free-list teardown
// unnecessary, but spec §9's redesign note still asks that object ownership
// be modeled explicitly rather than scattered across raw pointers -- so a
// Heap plays that role without leaking bookkeeping fields into the Obj
// types themselves (contrast with the intrusive "next object" pointer the C
// original embeds in every object header).
type Heap struct {
	objects []Obj
}

// Track records o as heap-owned and returns it, so allocation sites can
// write `return h.Track(&ObjString{...})`.
func (h *Heap) Track(o Obj) Obj {
	h.objects = append(h.objects, o)
	return o
}

// Count reports how many objects the heap has ever allocated.
func (h *Heap) Count() int {
	return len(h.objects)
}

// Objects returns every tracked object, in allocation order. Never used by
// the interpreter hot path.
func (h *Heap) Objects() []Obj {
	return h.objects
}
