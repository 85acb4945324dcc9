// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package scenario holds the case files: the mansion map and the suspect
// associations of each game variant.
//
// Case files are YAML documents compiled into the binary. They are read
// with unknown fields rejected and checked with struct tags before any
// structure is built from them.
package scenario

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/DetectiveQuest/services/quest/mansion"
	"github.com/AleutianAI/DetectiveQuest/services/quest/suspects"
)

//go:embed data/*.yaml
var dataFS embed.FS

var (
	// ErrUnknownScenario is returned by Load for a name with no case file.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrInvalidScenario wraps decoding and validation failures.
	ErrInvalidScenario = errors.New("invalid scenario")
)

// Scenario is one case file.
type Scenario struct {
	Name     string        `yaml:"name" validate:"required"`
	Title    string        `yaml:"title" validate:"required"`
	Variant  Variant       `yaml:"variant" validate:"required,oneof=novato aventureiro mestre"`
	Rooms    []RoomSpec    `yaml:"rooms" validate:"required,min=1,dive"`
	Suspects []SuspectSpec `yaml:"suspects" validate:"required_if=Variant mestre,dive"`
}

// RoomSpec is one room of the map. Left and Right name other rooms by id.
type RoomSpec struct {
	ID    string `yaml:"id" validate:"required,roomid"`
	Name  string `yaml:"name" validate:"required,max=50"`
	Clue  string `yaml:"clue" validate:"max=50"`
	Left  string `yaml:"left" validate:"omitempty,roomid"`
	Right string `yaml:"right" validate:"omitempty,roomid"`
}

// SuspectSpec associates a clue with the suspect it incriminates.
type SuspectSpec struct {
	Clue    string `yaml:"clue" validate:"required,max=50"`
	Suspect string `yaml:"suspect" validate:"required,max=50"`
}

var (
	scenarioValidate *validator.Validate
	roomIDPattern    = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

func init() {
	scenarioValidate = validator.New()
	_ = scenarioValidate.RegisterValidation("roomid", validateRoomID)
}

// validateRoomID accepts lower-case snake_case identifiers.
func validateRoomID(fl validator.FieldLevel) bool {
	return roomIDPattern.MatchString(fl.Field().String())
}

// Names returns the embedded scenario names, sorted.
func Names() []string {
	entries, err := fs.ReadDir(dataFS, "data")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Load reads and validates the embedded scenario called name.
func Load(name string) (*Scenario, error) {
	data, err := dataFS.ReadFile(path.Join("data", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScenario, name, strings.Join(Names(), ", "))
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	return sc, nil
}

// Parse decodes and validates one case file.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidScenario, err)
	}
	if err := scenarioValidate.Struct(&sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	return &sc, nil
}

// Records converts the rooms to mansion records, keeping file order.
func (s *Scenario) Records() []mansion.RoomRecord {
	records := make([]mansion.RoomRecord, len(s.Rooms))
	for i, r := range s.Rooms {
		records[i] = mansion.RoomRecord{
			ID:    r.ID,
			Name:  r.Name,
			Clue:  r.Clue,
			Left:  r.Left,
			Right: r.Right,
		}
	}
	return records
}

// BuildMansion assembles the map and returns its entrance.
func (s *Scenario) BuildMansion() (*mansion.Room, error) {
	root, err := mansion.Build(s.Records())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: build mansion: %w", s.Name, err)
	}
	return root, nil
}

// BuildIndex loads the suspect associations into an index with the given
// bucket count, in file order. Later entries for the same clue win.
func (s *Scenario) BuildIndex(buckets int) (*suspects.Index, error) {
	index, err := suspects.NewWithBuckets(buckets)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	for _, sp := range s.Suspects {
		index.Put(sp.Clue, sp.Suspect)
	}
	return index, nil
}
