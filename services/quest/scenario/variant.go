// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scenario

import "github.com/AleutianAI/DetectiveQuest/services/quest/explore"

// Variant selects the game rules.
type Variant string

const (
	// VariantNovato explores without clues; a dead end ends the game.
	VariantNovato Variant = "novato"

	// VariantAventureiro collects clues and lists them at the end.
	VariantAventureiro Variant = "aventureiro"

	// VariantMestre collects clues and ends with an accusation.
	VariantMestre Variant = "mestre"
)

// Policy returns the exploration rules of the variant.
func (v Variant) Policy() explore.Policy {
	switch v {
	case VariantNovato:
		return explore.Policy{StopAtDeadEnd: true}
	default:
		return explore.Policy{CollectClues: true}
	}
}

// ListsClues reports whether the collected clues are shown after exploring.
func (v Variant) ListsClues() bool {
	return v == VariantAventureiro || v == VariantMestre
}

// Judges reports whether the game ends with an accusation.
func (v Variant) Judges() bool {
	return v == VariantMestre
}
