// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/DetectiveQuest/pkg/logging"
	"github.com/AleutianAI/DetectiveQuest/pkg/ux"
	"github.com/AleutianAI/DetectiveQuest/services/quest/explore"
	"github.com/AleutianAI/DetectiveQuest/services/quest/judgment"
	"github.com/AleutianAI/DetectiveQuest/services/quest/scenario"
	"github.com/AleutianAI/DetectiveQuest/services/quest/suspects"
)

func load(t *testing.T, name string) *scenario.Scenario {
	t.Helper()
	sc, err := scenario.Load(name)
	require.NoError(t, err)
	return sc
}

func newSession(t *testing.T, sc *scenario.Scenario, inputs ...string) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s, err := New(sc, Options{
		Input:    ux.NewMockInputReader(inputs...),
		Narrator: ux.NewNarrator(&buf).Pinned(ux.PersonalityMachine),
		Logger:   logging.Discard(),
	})
	require.NoError(t, err)
	return s, &buf
}

// solvableCase has two clues that point at Cecilia.
const solvableCase = `
name: caso
title: Caso de Teste
variant: mestre
rooms:
  - {id: hall, name: Hall, clue: Papel higienico, left: quarto, right: cozinha}
  - {id: quarto, name: Quarto, clue: Tubo de batom vermelho}
  - {id: cozinha, name: Cozinha, clue: Garrafa de Azeite Vazia}
suspects:
  - {clue: Papel higienico, suspect: Cecilia}
  - {clue: Tubo de batom vermelho, suspect: Cecilia}
  - {clue: Garrafa de Azeite Vazia, suspect: Rafael}
`

// =============================================================================
// Variant Tests
// =============================================================================

func TestRun_Novato(t *testing.T) {
	s, out := newSession(t, load(t, "novato"), "d", "d")

	report, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, explore.ReasonDeadEnd, report.Exploration.Reason)
	assert.Equal(t, []string{"Hall de Entrada", "Biblioteca", "Escritório"}, report.Exploration.Path)
	assert.Nil(t, report.Verdict)
	assert.Empty(t, report.Clues)
	assert.Equal(t, Released{Rooms: 6}, report.Released)
	assert.NotContains(t, out.String(), "Pistas Coletadas")
	assert.Contains(t, out.String(), "Obrigado por jogar!")
}

func TestRun_AventureiroListsClues(t *testing.T) {
	s, out := newSession(t, load(t, "aventureiro"), "e", "e", "s")

	report, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Faca suja", "Livro com páginas rasgadas", "Pegada de lama"}, report.Clues)
	assert.Nil(t, report.Verdict)
	assert.Equal(t, Released{Rooms: 5, Clues: 3}, report.Released)
	assert.Contains(t, out.String(), "== Pistas Coletadas (em ordem alfabética) ==\nCLUE: Faca suja\nCLUE: Livro com páginas rasgadas\nCLUE: Pegada de lama\n")
}

func TestRun_AventureiroWithoutClues(t *testing.T) {
	sc, err := scenario.Parse([]byte("name: x\ntitle: X\nvariant: aventureiro\nrooms:\n  - {id: hall, name: Hall}\n"))
	require.NoError(t, err)
	s, out := newSession(t, sc, "s")

	_, err = s.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Nenhuma pista foi coletada!")
}

func TestRun_MestreCaseFileFails(t *testing.T) {
	s, out := newSession(t, load(t, "mestre"), "d", "d", "d", "s", "Cecilia")

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report.Verdict)

	// The rooms spell their clues differently from the suspect keys.
	assert.Equal(t, 0, report.Verdict.Tally)
	assert.False(t, report.Verdict.Success)
	assert.Equal(t, Released{Rooms: 10, Clues: 4, Suspects: 8}, report.Released)
	assert.Contains(t, out.String(), "Preparando para a fase de julgamento")
}

func TestRun_MestreSolved(t *testing.T) {
	sc, err := scenario.Parse([]byte(solvableCase))
	require.NoError(t, err)
	s, _ := newSession(t, sc, "e", "s", "Cecilia")

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report.Verdict)
	assert.True(t, report.Verdict.Success)
	assert.Equal(t, 2, report.Verdict.Tally)
	assert.Equal(t, judgment.DefaultThreshold, report.Verdict.Threshold)
}

func TestRun_MestreRafaelAcquitted(t *testing.T) {
	sc, err := scenario.Parse([]byte(solvableCase))
	require.NoError(t, err)
	var buf bytes.Buffer
	s, err := New(sc, Options{
		Input:    ux.NewMockInputReader("d", "s", "Rafael"),
		Narrator: ux.NewNarrator(&buf).Pinned(ux.PersonalityMachine),
	})
	require.NoError(t, err)

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Verdict.Tally)
	assert.False(t, report.Verdict.Success)
}

func TestRun_ConfigurableThreshold(t *testing.T) {
	sc, err := scenario.Parse([]byte(solvableCase))
	require.NoError(t, err)
	var buf bytes.Buffer
	s, err := New(sc, Options{
		Threshold: 1,
		Buckets:   3,
		Input:     ux.NewMockInputReader("d", "s", "Rafael"),
		Narrator:  ux.NewNarrator(&buf).Pinned(ux.PersonalityMachine),
	})
	require.NoError(t, err)

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Verdict.Success)
}

// =============================================================================
// Teardown and Error Tests
// =============================================================================

func TestRun_ReleasesOnJudgmentError(t *testing.T) {
	s, _ := newSession(t, load(t, "mestre"), "d", "s")

	report, err := s.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, judgment.ErrNoAccusation)
	require.NotNil(t, report)
	assert.Equal(t, Released{Rooms: 10, Clues: 2, Suspects: 8}, report.Released)
}

func TestRun_ReleasesOnCancel(t *testing.T) {
	s, _ := newSession(t, load(t, "mestre"), "s")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, report.Released.Rooms)
}

func TestRun_OnlyOnce(t *testing.T) {
	s, _ := newSession(t, load(t, "novato"), "s")

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestNew_Validation(t *testing.T) {
	input := ux.NewMockInputReader()

	_, err := New(nil, Options{Input: input})
	assert.ErrorIs(t, err, ErrNilScenario)

	_, err = New(load(t, "novato"), Options{})
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = New(load(t, "mestre"), Options{Input: input, Buckets: -1})
	assert.ErrorIs(t, err, suspects.ErrInvalidBuckets)
}

func TestNew_AssignsSessionID(t *testing.T) {
	a, _ := newSession(t, load(t, "novato"))
	b, _ := newSession(t, load(t, "novato"))

	_, err := uuid.Parse(a.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRun_ReportIdentity(t *testing.T) {
	s, _ := newSession(t, load(t, "aventureiro"), "s")

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, s.ID, report.SessionID)
	assert.Equal(t, "aventureiro", report.Scenario)
	assert.Equal(t, scenario.VariantAventureiro, report.Variant)
}
