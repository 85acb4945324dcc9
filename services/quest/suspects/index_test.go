// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package suspects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_KnownBuckets(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Anel de Prata", 3},
		{"anel de prata", 3},
		{"Papel higienico", 9},
		{"Tubo de batom vermelho", 4},
		{"Cabelo no chão", 1},
		{"pratos sujos na mesa", 2},
		{"Livros fora do armario", 5},
		{"Garrafa de Azeite Vazia", 6},
		{"a", 7},
		{"ab", 5},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Hash(tt.in, 10))
		})
	}
}

func TestHash_Deterministic(t *testing.T) {
	assert.Equal(t, Hash("Faca suja", 10), Hash("Faca suja", 10))
	assert.Equal(t, Hash("Aa", 10), Hash("BB", 10), "Aa and BB share a hash")
	assert.Equal(t, 0, Hash("anything", 1))
}

func TestIndex_PutLookupRoundTrip(t *testing.T) {
	x := New()
	assert.False(t, x.Put("Anel de Prata", "Cecilia"))

	got, ok := x.Lookup("Anel de Prata")
	require.True(t, ok)
	assert.Equal(t, "Cecilia", got)
	assert.Equal(t, 3, x.BucketOf("Anel de Prata"))
}

func TestIndex_LookupIsCaseSensitive(t *testing.T) {
	x := New()
	x.Put("Anel de Prata", "Cecilia")

	// Same bucket, different key.
	assert.Equal(t, x.BucketOf("Anel de Prata"), x.BucketOf("anel de prata"))
	_, ok := x.Lookup("anel de prata")
	assert.False(t, ok)
}

func TestIndex_LookupMiss(t *testing.T) {
	x := New()
	x.Put("Faca suja", "Rafael")

	_, ok := x.Lookup("Bilhete misterioso")
	assert.False(t, ok)
	_, ok = New().Lookup("")
	assert.False(t, ok)
}

func TestIndex_PutOverwritesInPlace(t *testing.T) {
	x := New()
	x.Put("Aa", "first")
	x.Put("BB", "second")
	require.Equal(t, []Entry{{"BB", "second"}, {"Aa", "first"}}, x.Chain(x.BucketOf("Aa")))

	assert.True(t, x.Put("Aa", "third"))

	got, _ := x.Lookup("Aa")
	assert.Equal(t, "third", got)
	assert.Equal(t, 2, x.Len(), "overwrite does not add an entry")
	assert.Equal(t, []Entry{{"BB", "second"}, {"Aa", "third"}}, x.Chain(x.BucketOf("Aa")),
		"chain order preserved")
}

func TestIndex_CollisionsResolveIndependently(t *testing.T) {
	x := New()
	x.Put("Fogão sujo", "Mordomo")
	x.Put("Garrafa de Azeite Vazia", "Cozinheira")
	require.Equal(t, x.BucketOf("Fogão sujo"), x.BucketOf("Garrafa de Azeite Vazia"))

	a, _ := x.Lookup("Fogão sujo")
	b, _ := x.Lookup("Garrafa de Azeite Vazia")
	assert.Equal(t, "Mordomo", a)
	assert.Equal(t, "Cozinheira", b)
}

func TestNewWithBuckets(t *testing.T) {
	x, err := NewWithBuckets(7)
	require.NoError(t, err)
	assert.Equal(t, 7, x.Buckets())

	_, err = NewWithBuckets(0)
	assert.ErrorIs(t, err, ErrInvalidBuckets)

	assert.Equal(t, DefaultBuckets, New().Buckets())
}

func TestIndex_Chain(t *testing.T) {
	x := New()
	assert.Nil(t, x.Chain(-1))
	assert.Nil(t, x.Chain(10))
	assert.Nil(t, x.Chain(0))
}

func TestIndex_Release(t *testing.T) {
	x := New()
	x.Put("Aa", "1")
	x.Put("BB", "2")
	x.Put("Faca suja", "3")

	assert.Equal(t, 3, x.Release())
	assert.Equal(t, 0, x.Len())
	_, ok := x.Lookup("Aa")
	assert.False(t, ok)
	assert.Equal(t, 10, x.Buckets())
	assert.Equal(t, 0, x.Release())
}
