// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// DefaultMaxInputLength bounds a single line of player input, in runes.
const DefaultMaxInputLength = 50

// =============================================================================
// InputReader Interface
// =============================================================================

// InputReader abstracts player input for testability.
//
// # Description
//
// The game engines only ever need "the next line". Production readers
// wrap stdin (plain, bubbletea or huh); tests use MockInputReader.
//
// # Outputs
//
// ReadLine returns the trimmed line, or io.EOF when input is exhausted.
type InputReader interface {
	ReadLine() (string, error)
}

// PromptingInputReader is implemented by readers that draw their own
// prompt (bubbletea and huh). Callers hand them the prompt text instead
// of printing it themselves, so the prompt is not shown twice.
type PromptingInputReader interface {
	InputReader
	SetPrompt(prompt string)
}

// Ask shows prompt through the narrator or the reader and reads one line.
func Ask(reader InputReader, narrator *Narrator, prompt string) (string, error) {
	if p, ok := reader.(PromptingInputReader); ok {
		p.SetPrompt(prompt)
	} else {
		narrator.Prompt(prompt)
	}
	return reader.ReadLine()
}

// truncateRunes cuts s to at most max runes. max <= 0 disables the limit.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// =============================================================================
// Input Modes
// =============================================================================

// InputMode selects which InputReader implementation NewInputReader builds.
type InputMode string

const (
	// InputAuto picks interactive on a terminal and plain otherwise.
	InputAuto InputMode = "auto"

	// InputPlain reads newline-terminated lines with bufio.
	InputPlain InputMode = "plain"

	// InputInteractive uses a bubbletea text input with history.
	InputInteractive InputMode = "interactive"

	// InputForm uses a huh input field per prompt.
	InputForm InputMode = "form"
)

// ErrUnknownInputMode is returned by ParseInputMode for unsupported names.
var ErrUnknownInputMode = errors.New("unknown input mode")

// ParseInputMode converts a configuration string to an InputMode.
// The empty string means InputAuto.
func ParseInputMode(s string) (InputMode, error) {
	switch InputMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", InputAuto:
		return InputAuto, nil
	case InputPlain:
		return InputPlain, nil
	case InputInteractive:
		return InputInteractive, nil
	case InputForm:
		return InputForm, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownInputMode, s)
	}
}

// NewInputReader builds the reader for mode on top of stdin.
//
// # Description
//
// InputAuto resolves to InputInteractive when stdin is a terminal and to
// InputPlain for piped input (CI, scripted play). The interactive and form
// readers always fall back to plain when stdin is not a terminal, because
// bubbletea cannot drive a pipe.
func NewInputReader(mode InputMode, stdin *os.File, maxLen int) InputReader {
	if maxLen <= 0 {
		maxLen = DefaultMaxInputLength
	}
	terminal := IsTerminal(stdin)

	switch {
	case mode == InputForm && terminal:
		return NewFormInputReader(maxLen)
	case (mode == InputInteractive || mode == InputAuto) && terminal:
		return NewInteractiveInputReader(32, maxLen)
	default:
		return NewLineReader(stdin, maxLen)
	}
}

// =============================================================================
// LineReader Implementation
// =============================================================================

// LineReader implements InputReader over any io.Reader.
//
// # Description
//
// Reads newline-terminated lines, trims surrounding whitespace (including
// the \r of CRLF input) and truncates to maxLen runes. A final line without
// a newline is returned before io.EOF.
//
// # Thread Safety
//
// Not thread-safe. One reader per input stream.
type LineReader struct {
	reader *bufio.Reader
	maxLen int
}

// NewLineReader creates a LineReader. maxLen <= 0 disables truncation.
func NewLineReader(r io.Reader, maxLen int) *LineReader {
	return &LineReader{
		reader: bufio.NewReader(r),
		maxLen: maxLen,
	}
}

// ReadLine reads one line.
func (r *LineReader) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return truncateRunes(strings.TrimSpace(line), r.maxLen), nil
		}
		return "", err
	}
	return truncateRunes(strings.TrimSpace(line), r.maxLen), nil
}

// =============================================================================
// InteractiveInputReader Implementation
// =============================================================================

// InteractiveInputReader implements PromptingInputReader with bubbletea.
//
// # Description
//
// Each ReadLine runs a short bubbletea program around a textinput with
// up/down history. The prompt is rendered by the text input.
//
//   - Enter: submit
//   - Ctrl+C: submit an empty line (the engine re-prompts)
//   - Ctrl+D: io.EOF
//
// # Limitations
//
//   - Requires a terminal; use NewInputReader for automatic fallback
type InteractiveInputReader struct {
	history    []string
	maxHistory int
	maxLen     int
	prompt     string
}

// inputModel is the bubbletea model for a single line of input.
type inputModel struct {
	textInput    textinput.Model
	history      []string
	historyIndex int
	currentInput string
	done         bool
	cancelled    bool
}

// NewInteractiveInputReader creates an interactive reader keeping up to
// maxHistory previous commands.
func NewInteractiveInputReader(maxHistory, maxLen int) *InteractiveInputReader {
	return &InteractiveInputReader{
		history:    make([]string, 0, maxHistory),
		maxHistory: maxHistory,
		maxLen:     maxLen,
		prompt:     "> ",
	}
}

// SetPrompt sets the prompt string to display before input.
func (r *InteractiveInputReader) SetPrompt(prompt string) {
	r.prompt = prompt + " "
}

// ReadLine reads a single line with history support.
func (r *InteractiveInputReader) ReadLine() (string, error) {
	ti := textinput.New()
	ti.Prompt = r.prompt
	ti.Focus()
	ti.CharLimit = r.maxLen
	ti.Width = 60

	m := inputModel{
		textInput:    ti,
		history:      r.history,
		historyIndex: -1,
	}

	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type from bubbletea: %T", finalModel)
	}

	if result.cancelled {
		return "", io.EOF
	}

	input := strings.TrimSpace(result.textInput.Value())
	if input != "" {
		r.addToHistory(input)
	}
	return input, nil
}

// addToHistory appends input, skipping repeats of the latest entry.
func (r *InteractiveInputReader) addToHistory(input string) {
	if len(r.history) > 0 && r.history[len(r.history)-1] == input {
		return
	}
	r.history = append(r.history, input)
	if len(r.history) > r.maxHistory {
		r.history = r.history[1:]
	}
}

// Init initializes the bubbletea model.
func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key events.
func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlC:
			m.textInput.SetValue("")
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlD:
			m.cancelled = true
			m.textInput.SetValue("")
			m.done = true
			return m, tea.Quit

		case tea.KeyUp:
			if len(m.history) == 0 {
				return m, nil
			}
			if m.historyIndex == -1 {
				m.currentInput = m.textInput.Value()
				m.historyIndex = len(m.history) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.textInput.SetValue(m.history[m.historyIndex])
			m.textInput.CursorEnd()
			return m, nil

		case tea.KeyDown:
			if m.historyIndex == -1 {
				return m, nil
			}
			if m.historyIndex < len(m.history)-1 {
				m.historyIndex++
				m.textInput.SetValue(m.history[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.textInput.SetValue(m.currentInput)
			}
			m.textInput.CursorEnd()
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the input prompt.
func (m inputModel) View() string {
	if m.done {
		return ""
	}
	return m.textInput.View()
}

// =============================================================================
// FormInputReader Implementation
// =============================================================================

// FormInputReader implements PromptingInputReader with a huh input field.
//
// Each ReadLine shows a one-field form titled with the current prompt.
// Aborting the form (Ctrl+C / Esc) is reported as io.EOF.
type FormInputReader struct {
	prompt string
	maxLen int
}

// NewFormInputReader creates a FormInputReader.
func NewFormInputReader(maxLen int) *FormInputReader {
	return &FormInputReader{maxLen: maxLen, prompt: "Your choice"}
}

// SetPrompt sets the title of the next form.
func (r *FormInputReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

// ReadLine runs the form and returns the entered value.
func (r *FormInputReader) ReadLine() (string, error) {
	var value string
	field := huh.NewInput().
		Title(r.prompt).
		CharLimit(r.maxLen).
		Value(&value)

	err := huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", io.EOF
		}
		return "", err
	}
	return truncateRunes(strings.TrimSpace(value), r.maxLen), nil
}

// =============================================================================
// MockInputReader Implementation (for testing)
// =============================================================================

// MockInputReader returns predetermined inputs, then io.EOF.
//
//	mock := NewMockInputReader("e", "d", "s")
//	line, _ := mock.ReadLine() // "e"
type MockInputReader struct {
	inputs []string
	index  int
}

// NewMockInputReader creates a MockInputReader with predetermined inputs.
func NewMockInputReader(inputs ...string) *MockInputReader {
	return &MockInputReader{inputs: inputs}
}

// ReadLine returns the next predetermined input.
func (m *MockInputReader) ReadLine() (string, error) {
	if m.index >= len(m.inputs) {
		return "", io.EOF
	}
	line := m.inputs[m.index]
	m.index++
	return strings.TrimSpace(line), nil
}

// Remaining returns how many inputs have not been consumed.
func (m *MockInputReader) Remaining() int {
	return len(m.inputs) - m.index
}

var (
	_ InputReader          = (*LineReader)(nil)
	_ PromptingInputReader = (*InteractiveInputReader)(nil)
	_ PromptingInputReader = (*FormInputReader)(nil)
	_ InputReader          = (*MockInputReader)(nil)
)
