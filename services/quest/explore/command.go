// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package explore

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Command is a navigation choice.
type Command int

const (
	CommandUnknown Command = iota
	CommandLeft
	CommandRight
	CommandStop
)

// String returns the command's key.
func (c Command) String() string {
	switch c {
	case CommandLeft:
		return "e"
	case CommandRight:
		return "d"
	case CommandStop:
		return "s"
	default:
		return "?"
	}
}

// ParseCommand maps a line of input to a Command.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return CommandUnknown
	}
	r, _ := utf8.DecodeRuneInString(line)
	switch unicode.ToLower(r) {
	case 'e':
		return CommandLeft
	case 'd':
		return CommandRight
	case 's':
		return CommandStop
	default:
		return CommandUnknown
	}
}
