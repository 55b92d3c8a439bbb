package gui

import (
	"encoding/binary"
	"hash/fnv"
)

// ID uniquely identifies a widget, window or dock node.
// IDs are stable across frames for the same label under the same parent.
type ID uint64

// hashID combines a parent ID and a label.
func hashID(parent ID, label string) ID {
	h := fnv.New64a()
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], uint64(parent))
	h.Write(seed[:])
	h.Write([]byte(label))
	return ID(h.Sum64())
}

// windowID is the ID of a window by name. Window names are global.
func windowID(name string) ID {
	return hashID(0, name)
}

// GetID returns the ID of label relative to the current ID stack.
func (ctx *Context) GetID(label string) ID {
	return hashID(ctx.CurrentID(), label)
}

// PushID pushes an ID onto the stack for nested widgets.
func (ctx *Context) PushID(label string) {
	ctx.idStack = append(ctx.idStack, ctx.GetID(label))
}

// PopID removes the last ID from the stack.
func (ctx *Context) PopID() {
	if len(ctx.idStack) > 0 {
		ctx.idStack = ctx.idStack[:len(ctx.idStack)-1]
	}
}

// CurrentID returns the current parent ID (top of stack).
func (ctx *Context) CurrentID() ID {
	if len(ctx.idStack) > 0 {
		return ctx.idStack[len(ctx.idStack)-1]
	}
	return 0
}
