// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package clues stores the clues a player has collected.
//
// The store is an unbalanced binary search tree keyed by clue text. Keys
// are compared byte-wise (Go string ordering) and matched case-sensitively,
// so "Faca suja" and "faca suja" are two different clues. Clues are never
// removed during play; Release empties the store at the end of a session.
//
// A Store is NOT safe for concurrent use.
package clues

import "iter"

// InsertResult reports what Insert did.
type InsertResult int

const (
	// Inserted means the clue was new and is now in the store.
	Inserted InsertResult = iota

	// Duplicate means the clue was already in the store. Nothing changed.
	Duplicate

	// Ignored means the clue was empty. Nothing changed.
	Ignored
)

// String returns the result name used in logs and metrics.
func (r InsertResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case Duplicate:
		return "duplicate"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

type node struct {
	clue string
	l, r *node
}

// Store is an ordered set of clue texts.
// The zero value is an empty store ready to use.
type Store struct {
	root *node
	size int
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Insert adds clue to the store.
func (s *Store) Insert(clue string) InsertResult {
	if clue == "" {
		return Ignored
	}

	n := &node{clue: clue}
	if s.root == nil {
		s.root = n
		s.size++
		return Inserted
	}

	cn := s.root
	for {
		switch {
		case clue < cn.clue:
			if cn.l == nil {
				cn.l = n
				s.size++
				return Inserted
			}
			cn = cn.l
		case clue > cn.clue:
			if cn.r == nil {
				cn.r = n
				s.size++
				return Inserted
			}
			cn = cn.r
		default:
			return Duplicate
		}
	}
}

// Contains reports whether clue has been collected.
func (s *Store) Contains(clue string) bool {
	cn := s.root
	for cn != nil {
		switch {
		case clue < cn.clue:
			cn = cn.l
		case clue > cn.clue:
			cn = cn.r
		default:
			return true
		}
	}
	return false
}

// Len returns the number of distinct clues.
func (s *Store) Len() int {
	return s.size
}

// All yields the clues in ascending order. The sequence can be ranged over
// any number of times and stops walking as soon as the consumer stops.
func (s *Store) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		var stack []*node
		cn := s.root
		for cn != nil || len(stack) > 0 {
			for cn != nil {
				stack = append(stack, cn)
				cn = cn.l
			}
			cn = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(cn.clue) {
				return
			}
			cn = cn.r
		}
	}
}

// List returns the clues in ascending order.
func (s *Store) List() []string {
	out := make([]string, 0, s.size)
	for clue := range s.All() {
		out = append(out, clue)
	}
	return out
}

// Release detaches every node post-order and returns how many clues were
// released. The store is empty afterwards and may be reused.
func (s *Store) Release() int {
	n := release(s.root)
	s.root = nil
	s.size = 0
	return n
}

func release(n *node) int {
	if n == nil {
		return 0
	}
	count := release(n.l) + release(n.r)
	n.l, n.r = nil, nil
	return count + 1
}
