// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides the console surface of Detective Quest: styled
// narration output and line-oriented input readers.
package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Detective Quest palette - lamplight ambers on a dark study
var (
	ColorAmberBright = lipgloss.Color("#F5B041") // titles, highlights
	ColorAmber       = lipgloss.Color("#D68910") // room names
	ColorBrass       = lipgloss.Color("#B7950B") // borders
	ColorInk         = lipgloss.Color("#5D6D7E") // muted text
	ColorParchment   = lipgloss.Color("#F8F1E5") // emphasis

	ColorSuccess = lipgloss.Color("#58D68D")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#5D6D7E")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	Key       lipgloss.Style

	Box        lipgloss.Style
	WarningBox lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorAmberBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorAmber),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorParchment).Bold(true),
	Key:       lipgloss.NewStyle().Foreground(ColorAmberBright).Bold(true),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBrass).
		Padding(0, 1),
	WarningBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconClue    Icon = "🔎"
	IconDoor    Icon = "🚪"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// Narrator writes the story to the player.
//
// Every method renders according to the personality level. A Narrator
// created with NewNarrator follows the global personality; Pinned fixes
// the level, which is how tests get stable plain-text output.
//
// Not safe for concurrent use; the game loop owns its narrator.
type Narrator struct {
	w      io.Writer
	pinned PersonalityLevel
}

// NewNarrator creates a Narrator writing to w.
func NewNarrator(w io.Writer) *Narrator {
	return &Narrator{w: w}
}

// Pinned returns a copy of the narrator locked to the given level.
func (n *Narrator) Pinned(level PersonalityLevel) *Narrator {
	return &Narrator{w: n.w, pinned: level}
}

// Writer returns the destination of the narration.
func (n *Narrator) Writer() io.Writer {
	return n.w
}

func (n *Narrator) level() PersonalityLevel {
	if n.pinned != "" {
		return n.pinned
	}
	return GetPersonality().Level
}

func (n *Narrator) printf(format string, args ...any) {
	fmt.Fprintf(n.w, format, args...)
}

// Blank prints an empty line.
func (n *Narrator) Blank() {
	n.printf("\n")
}

// Title prints a section header.
func (n *Narrator) Title(text string) {
	switch n.level() {
	case PersonalityMachine:
		n.printf("== %s ==\n", text)
	case PersonalityMinimal:
		n.printf("%s\n", Styles.Bold.Render(text))
	default:
		n.printf("%s\n", Styles.Box.Render(Styles.Title.Render(text)))
	}
}

// Line prints plain narration.
func (n *Narrator) Line(text string) {
	n.printf("%s\n", text)
}

// Linef prints formatted plain narration.
func (n *Narrator) Linef(format string, args ...any) {
	n.Line(fmt.Sprintf(format, args...))
}

// Room announces the room the player just entered.
func (n *Narrator) Room(name string) {
	switch n.level() {
	case PersonalityMachine:
		n.printf("ROOM: %s\n", name)
	case PersonalityMinimal:
		n.printf("%s %s\n", IconDoor.Render(), name)
	default:
		n.printf("\n%s %s\n", IconDoor.Render(), Styles.Subtitle.Bold(true).Render(name))
	}
}

// Clue announces a clue found in a room.
func (n *Narrator) Clue(text string) {
	switch n.level() {
	case PersonalityMachine:
		n.printf("CLUE: %s\n", text)
	default:
		n.printf("%s %s\n", IconClue.Render(), Styles.Highlight.Render(text))
	}
}

// Success prints a success message with checkmark
func (n *Narrator) Success(text string) {
	switch n.level() {
	case PersonalityMachine:
		n.printf("OK: %s\n", text)
	case PersonalityMinimal:
		n.printf("%s %s\n", IconSuccess.Render(), text)
	default:
		n.printf("%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
	}
}

// Warning prints a warning message
func (n *Narrator) Warning(text string) {
	switch n.level() {
	case PersonalityMachine:
		n.printf("WARN: %s\n", text)
	case PersonalityMinimal:
		n.printf("%s %s\n", IconWarning.Render(), text)
	default:
		n.printf("%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
	}
}

// Error prints an error message
func (n *Narrator) Error(text string) {
	switch n.level() {
	case PersonalityMachine:
		n.printf("ERROR: %s\n", text)
	case PersonalityMinimal:
		n.printf("%s %s\n", IconError.Render(), text)
	default:
		n.printf("%s %s\n", IconError.Render(), Styles.Error.Render(text))
	}
}

// Info prints an informational message
func (n *Narrator) Info(text string) {
	switch n.level() {
	case PersonalityMachine:
		n.printf("%s\n", text)
	default:
		n.printf("%s %s\n", Styles.Muted.Render("│"), text)
	}
}

// Muted prints secondary text. Machine output drops it.
func (n *Narrator) Muted(text string) {
	if n.level() == PersonalityMachine {
		return
	}
	n.printf("%s\n", Styles.Muted.Render(text))
}

// Flavor prints atmosphere text, only at full personality.
func (n *Narrator) Flavor(text string) {
	if n.level() != PersonalityFull {
		return
	}
	n.printf("%s\n", Styles.Muted.Italic(true).Render(text))
}

// Bullet prints one item of a list.
func (n *Narrator) Bullet(text string) {
	switch n.level() {
	case PersonalityMachine:
		n.printf("- %s\n", text)
	default:
		n.printf("  %s %s\n", IconBullet.Render(), text)
	}
}

// Option prints one selectable command, e.g. "(e) Cozinha".
func (n *Narrator) Option(key, label string) {
	switch n.level() {
	case PersonalityMachine:
		n.printf("  (%s) %s\n", key, label)
	default:
		n.printf("  %s %s\n", Styles.Key.Render("("+key+")"), label)
	}
}

// Prompt prints a prompt without a trailing newline.
func (n *Narrator) Prompt(text string) {
	switch n.level() {
	case PersonalityMachine:
		n.printf("%s ", text)
	default:
		n.printf("%s %s ", Styles.Key.Render(string(IconArrow)), text)
	}
}

// Box prints text in a rounded box
func (n *Narrator) Box(title, content string) {
	if n.level() == PersonalityMachine {
		n.printf("%s: %s\n", title, content)
		return
	}
	boxStyle := Styles.Box.Width(60)
	titleLine := Styles.Title.Render(title)
	n.printf("%s\n", boxStyle.Render(titleLine+"\n"+content))
}

// WarningBox prints text in a warning-styled box
func (n *Narrator) WarningBox(title, content string) {
	if n.level() == PersonalityMachine {
		n.printf("WARN %s: %s\n", title, content)
		return
	}
	boxStyle := Styles.WarningBox.Width(60)
	titleLine := Styles.Warning.Bold(true).Render(title)
	n.printf("%s\n", boxStyle.Render(titleLine+"\n"+content))
}

// Tree prints one node of an indented tree listing.
func (n *Narrator) Tree(depth int, text string) {
	indent := strings.Repeat("  ", depth)
	switch n.level() {
	case PersonalityMachine:
		n.printf("%s%s\n", indent, text)
	default:
		prefix := ""
		if depth > 0 {
			prefix = Styles.Muted.Render("└─ ")
		}
		n.printf("%s%s%s\n", indent, prefix, text)
	}
}
