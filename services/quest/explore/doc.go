// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package explore walks the player through the mansion.
//
// The Engine is a small state machine over the current room. On entering a
// room it collects the room's clue (when the policy collects clues), then
// offers the existing exits and reads one command:
//
//	e  go left (esquerda)
//	d  go right (direita)
//	s  stop exploring (sair)
//
// Only the first character of the trimmed, lower-cased line counts, so
// "Esquerda" works too. Anything else, including a direction without an
// exit, is reported and the prompt repeats without moving.
//
// Exploration ends when the player types s, when input ends (treated like
// s), or, under a StopAtDeadEnd policy, on entering a room with no exits.
package explore
