// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package suspects maps clue text to the suspect it incriminates.
//
// The index is a fixed-size hash table with separate chaining. The bucket
// count is chosen at construction and never changes; there is no rehashing.
// Keys are matched exactly and case-sensitively.
//
// # Hash Function
//
// Hash is the classic polynomial string hash h = h*31 + b over the bytes of
// the key, wrapping at 32 bits, reduced modulo the bucket count. It has no
// seed, so bucket placement is stable across runs and platforms.
//
// An Index is NOT safe for concurrent use.
package suspects

import "errors"

// DefaultBuckets is the bucket count used when none is configured.
const DefaultBuckets = 10

// ErrInvalidBuckets is returned by NewWithBuckets for a count below one.
var ErrInvalidBuckets = errors.New("bucket count must be at least 1")

// Entry is one clue-to-suspect association.
type Entry struct {
	Clue    string
	Suspect string
}

type entry struct {
	Entry
	next *entry
}

// Index is a chained hash table from clue text to suspect name.
type Index struct {
	buckets []*entry
	size    int
}

// New returns an index with DefaultBuckets buckets.
func New() *Index {
	idx, _ := NewWithBuckets(DefaultBuckets)
	return idx
}

// NewWithBuckets returns an index with n buckets.
func NewWithBuckets(n int) (*Index, error) {
	if n < 1 {
		return nil, ErrInvalidBuckets
	}
	return &Index{buckets: make([]*entry, n)}, nil
}

// Hash returns the bucket of s in a table of n buckets.
func Hash(s string, n int) int {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return int(h % uint32(n))
}

// Put associates clue with suspect.
//
// If the clue is already present its suspect is overwritten in place, keeping
// its position in the chain, and Put returns true. Otherwise a new entry is
// prepended to the chain and Put returns false.
func (x *Index) Put(clue, suspect string) (updated bool) {
	b := Hash(clue, len(x.buckets))
	for e := x.buckets[b]; e != nil; e = e.next {
		if e.Clue == clue {
			e.Suspect = suspect
			return true
		}
	}
	x.buckets[b] = &entry{Entry: Entry{Clue: clue, Suspect: suspect}, next: x.buckets[b]}
	x.size++
	return false
}

// Lookup returns the suspect associated with clue.
func (x *Index) Lookup(clue string) (string, bool) {
	for e := x.buckets[Hash(clue, len(x.buckets))]; e != nil; e = e.next {
		if e.Clue == clue {
			return e.Suspect, true
		}
	}
	return "", false
}

// Len returns the number of associations.
func (x *Index) Len() int {
	return x.size
}

// Buckets returns the bucket count.
func (x *Index) Buckets() int {
	return len(x.buckets)
}

// BucketOf returns the bucket clue hashes to in this index.
func (x *Index) BucketOf(clue string) int {
	return Hash(clue, len(x.buckets))
}

// Chain returns the entries of bucket b from head to tail. It returns nil
// for an empty or out-of-range bucket.
func (x *Index) Chain(b int) []Entry {
	if b < 0 || b >= len(x.buckets) {
		return nil
	}
	var out []Entry
	for e := x.buckets[b]; e != nil; e = e.next {
		out = append(out, e.Entry)
	}
	return out
}

// Release unlinks every chain and returns how many entries were released.
// The bucket count is kept, so the index can be refilled.
func (x *Index) Release() int {
	n := 0
	for b, head := range x.buckets {
		for e := head; e != nil; {
			next := e.next
			e.next = nil
			e = next
			n++
		}
		x.buckets[b] = nil
	}
	x.size = 0
	return n
}
