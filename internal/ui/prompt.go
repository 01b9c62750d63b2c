package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter is the interactive input provider used by the pipeline.
type Prompter interface {
	Ask(label string, secret bool) (string, error)
	Confirm(label string) (bool, error)
	Pause(label string) error
}

var (
	_ Prompter = (*TerminalPrompter)(nil)
	_ Prompter = (*LinePrompter)(nil)
)

// TerminalPrompter runs a short Bubble Tea program per question.
type TerminalPrompter struct {
	in     io.Reader
	out    io.Writer
	styles Styles
}

// NewTerminalPrompter returns a prompter reading keys from in and drawing to out.
func NewTerminalPrompter(in io.Reader, out io.Writer, styles Styles) *TerminalPrompter {
	return &TerminalPrompter{in: in, out: out, styles: styles}
}

// Ask reads a single line. Secret input is masked.
func (p *TerminalPrompter) Ask(label string, secret bool) (string, error) {
	final, err := p.run(newInputModel(label, secret, p.styles))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.input.Value(), nil
}

// Confirm asks a yes/no question; enter alone means no.
func (p *TerminalPrompter) Confirm(label string) (bool, error) {
	final, err := p.run(newConfirmModel(label, p.styles))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.answer, nil
}

// Pause waits for enter.
func (p *TerminalPrompter) Pause(label string) error {
	_, err := p.run(newConfirmModel(label, p.styles).asPause())
	return err
}

func (p *TerminalPrompter) run(m tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(m, tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

type inputModel struct {
	label     string
	secret    bool
	input     textinput.Model
	keys      promptKeys
	styles    Styles
	done      bool
	cancelled bool
}

func newInputModel(label string, secret bool, styles Styles) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()
	return inputModel{label: label, secret: secret, input: ti, keys: defaultPromptKeys(), styles: styles}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	label := m.styles.AccentText.Render(m.label)
	if m.done || m.cancelled {
		value := m.input.Value()
		if m.secret {
			value = strings.Repeat("•", len([]rune(value)))
		}
		return fmt.Sprintf("%s: %s\n", label, value)
	}
	return fmt.Sprintf("%s\n%s\n", label, m.input.View())
}

type confirmModel struct {
	label     string
	pause     bool
	keys      promptKeys
	styles    Styles
	answer    bool
	done      bool
	cancelled bool
}

func newConfirmModel(label string, styles Styles) confirmModel {
	return confirmModel{label: label, keys: defaultPromptKeys(), styles: styles}
}

func (m confirmModel) asPause() confirmModel {
	m.pause = true
	return m
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Submit):
		m.done = true
		return m, tea.Quit
	case m.pause:
		return m, nil
	case key.Matches(km, m.keys.Yes):
		m.answer, m.done = true, true
		return m, tea.Quit
	case key.Matches(km, m.keys.No):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	label := m.styles.AccentText.Render(m.label)
	if m.pause {
		if m.done || m.cancelled {
			return ""
		}
		return label + "\n"
	}
	if m.done {
		answer := "no"
		if m.answer {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s\n", label, answer)
	}
	return fmt.Sprintf("%s %s\n", label, m.styles.MutedText.Render("[y/N]"))
}

// LinePrompter reads answers line by line, for piped stdin and tests.
type LinePrompter struct {
	r   *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter reading from in and echoing labels to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(in), out: out}
}

// Ask returns the next line without its line ending.
func (p *LinePrompter) Ask(label string, _ bool) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return line, nil
}

// Confirm accepts y or yes, case-insensitively.
func (p *LinePrompter) Confirm(label string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", label)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Pause consumes one line; end of input is not an error.
func (p *LinePrompter) Pause(label string) error {
	fmt.Fprintln(p.out, label)
	if _, err := p.readLine(); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	return nil
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", io.ErrUnexpectedEOF
			}
		} else {
			return "", fmt.Errorf("read input: %w", err)
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
