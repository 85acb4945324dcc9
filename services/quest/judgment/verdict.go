// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package judgment resolves the player's accusation.
//
// Each collected clue is looked up in the suspect index; the accusation
// holds when at least Threshold clues point at the accused. Names are
// compared exactly, so "cecilia" does not match "Cecilia".
package judgment

import (
	"github.com/AleutianAI/DetectiveQuest/services/quest/clues"
	"github.com/AleutianAI/DetectiveQuest/services/quest/suspects"
)

// DefaultThreshold is the number of matching clues needed for a conviction.
const DefaultThreshold = 2

// Verdict is the outcome of an accusation.
type Verdict struct {
	Accused string

	// Tally counts the collected clues whose suspect is Accused.
	Tally int

	Threshold int

	// Evidence lists the matching clues in ascending order.
	Evidence []string

	Success bool
}

// Tally walks store in order and returns how many clues the index maps to
// accused, together with those clues. Clues missing from the index are
// skipped.
func Tally(store *clues.Store, index *suspects.Index, accused string) (int, []string) {
	var evidence []string
	for clue := range store.All() {
		if suspect, ok := index.Lookup(clue); ok && suspect == accused {
			evidence = append(evidence, clue)
		}
	}
	return len(evidence), evidence
}

// Decide tallies the evidence against accused and applies threshold.
func Decide(store *clues.Store, index *suspects.Index, accused string, threshold int) Verdict {
	n, evidence := Tally(store, index, accused)
	return Verdict{
		Accused:   accused,
		Tally:     n,
		Threshold: threshold,
		Evidence:  evidence,
		Success:   n >= threshold,
	}
}
