// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package mansion

import "fmt"

// RoomRecord describes one room and the ids of its exits.
// Left and Right are empty when the exit does not exist.
type RoomRecord struct {
	ID    string
	Name  string
	Clue  string
	Left  string
	Right string
}

// Build assembles the mansion from records and returns the entrance.
//
// # Description
//
// The first record is the entrance. Build checks that the records form a
// single tree before returning it:
//   - at least one record (ErrEmptyMap)
//   - ids are unique (ErrDuplicateRoom)
//   - every exit names a known id (ErrUnknownRoom)
//   - no room is entered from two places, and nothing leads back to the
//     entrance (ErrMultipleParents)
//   - every record is reachable from the entrance (ErrUnreachableRoom)
//
// Errors are *RecordError values wrapping the sentinel.
func Build(records []RoomRecord) (*Room, error) {
	if len(records) == 0 {
		return nil, ErrEmptyMap
	}

	rooms := make(map[string]*Room, len(records))
	for _, rec := range records {
		if _, exists := rooms[rec.ID]; exists {
			return nil, &RecordError{ID: rec.ID, Err: ErrDuplicateRoom}
		}
		rooms[rec.ID] = NewRoom(rec.Name, rec.Clue)
	}

	rootID := records[0].ID
	parent := make(map[string]string, len(records))

	link := func(from, to string) (*Room, error) {
		if to == "" {
			return nil, nil
		}
		child, ok := rooms[to]
		if !ok {
			return nil, &RecordError{ID: from, Err: fmt.Errorf("%w: exit %q", ErrUnknownRoom, to)}
		}
		if to == rootID {
			return nil, &RecordError{ID: to, Err: fmt.Errorf("%w: entrance reached from %q", ErrMultipleParents, from)}
		}
		if prev, taken := parent[to]; taken {
			return nil, &RecordError{ID: to, Err: fmt.Errorf("%w: %q and %q", ErrMultipleParents, prev, from)}
		}
		parent[to] = from
		return child, nil
	}

	for _, rec := range records {
		left, err := link(rec.ID, rec.Left)
		if err != nil {
			return nil, err
		}
		right, err := link(rec.ID, rec.Right)
		if err != nil {
			return nil, err
		}
		rooms[rec.ID].SetLeft(left).SetRight(right)
	}

	root := rooms[rootID]
	reached := make(map[*Room]bool, len(records))
	root.Walk(func(_ int, r *Room) bool {
		reached[r] = true
		return true
	})
	for _, rec := range records {
		if !reached[rooms[rec.ID]] {
			return nil, &RecordError{ID: rec.ID, Err: ErrUnreachableRoom}
		}
	}

	return root, nil
}
