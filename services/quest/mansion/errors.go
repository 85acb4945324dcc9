// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package mansion provides the room graph explored by the player.
//
// The mansion is a binary tree: every room has at most a left and a right
// exit, and every room except the root is reachable from exactly one parent.
//
// # Ownership Model
//
// The root room owns the whole tree. Rooms are assembled once by the setup
// code (Build or SetLeft/SetRight) and are read-only during play. Release
// detaches every room post-order at the end of a session.
//
// # Thread Safety
//
// Rooms are NOT safe for concurrent mutation. After assembly the tree can be
// read from multiple goroutines.
package mansion

import (
	"errors"
	"fmt"
)

// Sentinel errors for map assembly.
var (
	// ErrEmptyMap is returned when Build receives no room records.
	ErrEmptyMap = errors.New("mansion map has no rooms")

	// ErrDuplicateRoom is returned when two records share an id.
	ErrDuplicateRoom = errors.New("duplicate room id")

	// ErrUnknownRoom is returned when an exit references an id that no
	// record defines.
	ErrUnknownRoom = errors.New("unknown room id")

	// ErrMultipleParents is returned when a room is the exit of more than
	// one room, or of the root chain leading back to itself.
	ErrMultipleParents = errors.New("room has more than one parent")

	// ErrUnreachableRoom is returned when a record cannot be reached from
	// the root.
	ErrUnreachableRoom = errors.New("room is unreachable from the entrance")
)

// RecordError reports which record failed validation.
type RecordError struct {
	ID  string
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("room %q: %v", e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
