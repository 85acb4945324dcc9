// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package mansion

// Room is one location of the mansion.
type Room struct {
	// Name is shown to the player on entry.
	Name string

	// Clue is the clue found in this room. Empty means no clue.
	Clue string

	left  *Room
	right *Room
}

// NewRoom creates a room with no exits.
func NewRoom(name, clue string) *Room {
	return &Room{Name: name, Clue: clue}
}

// SetLeft attaches child as the left exit and returns r for chaining.
func (r *Room) SetLeft(child *Room) *Room {
	r.left = child
	return r
}

// SetRight attaches child as the right exit and returns r for chaining.
func (r *Room) SetRight(child *Room) *Room {
	r.right = child
	return r
}

// Left returns the left exit, or nil.
func (r *Room) Left() *Room {
	return r.left
}

// Right returns the right exit, or nil.
func (r *Room) Right() *Room {
	return r.right
}

// HasClue reports whether the room holds a clue.
func (r *Room) HasClue() bool {
	return r.Clue != ""
}

// IsDeadEnd reports whether the room has no exits.
func (r *Room) IsDeadEnd() bool {
	return r.left == nil && r.right == nil
}

// Count returns the number of rooms in the subtree rooted at r.
func (r *Room) Count() int {
	n := 0
	r.Walk(func(int, *Room) bool {
		n++
		return true
	})
	return n
}

// Walk visits the subtree pre-order (room, left, right), passing the depth
// relative to r. Returning false from fn stops the walk.
func (r *Room) Walk(fn func(depth int, room *Room) bool) {
	r.walk(0, fn)
}

func (r *Room) walk(depth int, fn func(int, *Room) bool) bool {
	if r == nil {
		return true
	}
	if !fn(depth, r) {
		return false
	}
	if !r.left.walk(depth+1, fn) {
		return false
	}
	return r.right.walk(depth+1, fn)
}

// Release detaches every room of the subtree post-order and returns how
// many rooms were released. Releasing a nil room is a no-op.
func (r *Room) Release() int {
	if r == nil {
		return 0
	}
	n := r.left.Release() + r.right.Release()
	r.left = nil
	r.right = nil
	return n + 1
}
