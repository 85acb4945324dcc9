// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/DetectiveQuest/services/quest/explore"
	"github.com/AleutianAI/DetectiveQuest/services/quest/mansion"
	"github.com/AleutianAI/DetectiveQuest/services/quest/suspects"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"aventureiro", "mestre", "novato"}, Names())
}

func TestLoad_AllEmbeddedScenariosBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			sc, err := Load(name)
			require.NoError(t, err)
			assert.Equal(t, name, sc.Name)
			assert.Equal(t, Variant(name), sc.Variant)

			root, err := sc.BuildMansion()
			require.NoError(t, err)
			assert.Equal(t, "Hall de Entrada", root.Name)
			assert.Equal(t, len(sc.Rooms), root.Count())

			index, err := sc.BuildIndex(suspects.DefaultBuckets)
			require.NoError(t, err)
			assert.Equal(t, len(sc.Suspects), index.Len())
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("lenda")
	assert.ErrorIs(t, err, ErrUnknownScenario)
	assert.Contains(t, err.Error(), "mestre")
}

func TestLoad_NovatoHasNoClues(t *testing.T) {
	sc, err := Load("novato")
	require.NoError(t, err)

	root, err := sc.BuildMansion()
	require.NoError(t, err)
	root.Walk(func(_ int, r *mansion.Room) bool {
		assert.False(t, r.HasClue(), r.Name)
		return true
	})
	assert.Equal(t, 6, root.Count())
}

func TestLoad_MestreData(t *testing.T) {
	sc, err := Load("mestre")
	require.NoError(t, err)

	root, err := sc.BuildMansion()
	require.NoError(t, err)
	assert.Equal(t, " Fogao sujo", root.Left().Clue, "leading space kept")
	assert.Equal(t, "Escritório", root.Left().Right().Left().Name)
	assert.False(t, root.Right().Left().HasClue(), "Sala de Estar has no clue")

	index, err := sc.BuildIndex(10)
	require.NoError(t, err)
	who, ok := index.Lookup("Anel de Prata")
	require.True(t, ok)
	assert.Equal(t, "Bartolomeu", who)
	assert.Equal(t, 3, index.BucketOf("Anel de Prata"))

	_, ok = index.Lookup("papel higienico")
	assert.False(t, ok, "room clue spelling differs from the index key")
}

func TestBuildIndex_InvalidBuckets(t *testing.T) {
	sc, err := Load("mestre")
	require.NoError(t, err)

	_, err = sc.BuildIndex(0)
	assert.ErrorIs(t, err, suspects.ErrInvalidBuckets)
}

func TestBuildIndex_LaterEntryWins(t *testing.T) {
	sc, err := Parse([]byte(`
name: t
title: T
variant: mestre
rooms:
  - {id: hall, name: Hall}
suspects:
  - {clue: Faca, suspect: Ana}
  - {clue: Faca, suspect: Beto}
`))
	require.NoError(t, err)

	index, err := sc.BuildIndex(3)
	require.NoError(t, err)
	who, _ := index.Lookup("Faca")
	assert.Equal(t, "Beto", who)
	assert.Equal(t, 1, index.Len())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "rooms: [\n"},
		{"unknown field", "name: x\ntitle: X\nvariant: novato\nsecret: 1\nrooms:\n  - {id: hall, name: Hall}\n"},
		{"missing title", "name: x\nvariant: novato\nrooms:\n  - {id: hall, name: Hall}\n"},
		{"bad variant", "name: x\ntitle: X\nvariant: lenda\nrooms:\n  - {id: hall, name: Hall}\n"},
		{"no rooms", "name: x\ntitle: X\nvariant: novato\n"},
		{"room without name", "name: x\ntitle: X\nvariant: novato\nrooms:\n  - {id: hall}\n"},
		{"bad room id", "name: x\ntitle: X\nvariant: novato\nrooms:\n  - {id: Hall Grande, name: Hall}\n"},
		{"bad exit id", "name: x\ntitle: X\nvariant: novato\nrooms:\n  - {id: hall, name: Hall, left: \"Sala!\"}\n"},
		{"mestre without suspects", "name: x\ntitle: X\nvariant: mestre\nrooms:\n  - {id: hall, name: Hall}\n"},
		{"suspect without name", "name: x\ntitle: X\nvariant: mestre\nrooms:\n  - {id: hall, name: Hall}\nsuspects:\n  - {clue: Faca}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestBuildMansion_StructuralError(t *testing.T) {
	sc, err := Parse([]byte(`
name: t
title: T
variant: novato
rooms:
  - {id: hall, name: Hall, left: porao}
`))
	require.NoError(t, err)

	_, err = sc.BuildMansion()
	assert.ErrorIs(t, err, mansion.ErrUnknownRoom)
}

func TestVariant_Rules(t *testing.T) {
	assert.Equal(t, explore.Policy{StopAtDeadEnd: true}, VariantNovato.Policy())
	assert.Equal(t, explore.Policy{CollectClues: true}, VariantAventureiro.Policy())
	assert.Equal(t, explore.Policy{CollectClues: true}, VariantMestre.Policy())

	assert.False(t, VariantNovato.ListsClues())
	assert.True(t, VariantAventureiro.ListsClues())
	assert.True(t, VariantMestre.ListsClues())

	assert.False(t, VariantNovato.Judges())
	assert.False(t, VariantAventureiro.Judges())
	assert.True(t, VariantMestre.Judges())
}
