package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the operator cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// ─── Key bindings ────────────────────────────────────────────────────────────

type confirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Submit key.Binding
	Abort  key.Binding
}

var keys = confirmKeys{
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	Toggle: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab"), key.WithHelp("←/→", "toggle")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Abort:  key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "abort")),
}

// ─── Model ───────────────────────────────────────────────────────────────────

// confirmModel is a yes/no question. The default selection is "no".
type confirmModel struct {
	question string
	yes      bool
	done     bool
	aborted  bool
}

func newConfirmModel(question string) confirmModel {
	return confirmModel{question: question}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, keys.Abort):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(k, keys.Yes):
		m.yes, m.done = true, true
		return m, tea.Quit
	case key.Matches(k, keys.No):
		m.yes, m.done = false, true
		return m, tea.Quit
	case key.Matches(k, keys.Toggle):
		m.yes = !m.yes
	case key.Matches(k, keys.Submit):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	selected := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	plain := lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)

	yes, no := plain.Render("Yes"), selected.Render("No")
	if m.yes {
		yes, no = selected.Render("Yes"), plain.Render("No")
	}

	help := lipgloss.NewStyle().Foreground(ColorMuted).Render(
		fmt.Sprintf("%s %s · %s %s · %s %s",
			keys.Yes.Help().Key, keys.Yes.Help().Desc,
			keys.No.Help().Key, keys.No.Help().Desc,
			keys.Abort.Help().Key, keys.Abort.Help().Desc))

	question := lipgloss.NewStyle().Foreground(ColorText).Render(m.question)
	return fmt.Sprintf("%s %s\n  %s %s\n  %s\n",
		lipgloss.NewStyle().Foreground(ColorWarning).Render(IconChevron), question, yes, no, help)
}

// ─── Prompters ───────────────────────────────────────────────────────────────

// TUIPrompter asks with a bubbletea prompt.
type TUIPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements the space advisor's Prompter.
func (p TUIPrompter) Confirm(question string) (bool, error) {
	final, err := tea.NewProgram(newConfirmModel(question),
		tea.WithInput(p.In), tea.WithOutput(p.Out)).Run()
	if err != nil {
		return false, fmt.Errorf("run prompt: %w", err)
	}
	m := final.(confirmModel)
	if m.aborted {
		return false, ErrAborted
	}
	return m.yes, nil
}

// LinePrompter reads a y/n answer line by line. Anything other than y or
// yes counts as no; end of input is an abort.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a LinePrompter reading from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm implements the space advisor's Prompter.
func (p *LinePrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return false, ErrAborted
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Decline answers no to everything. It backs --non-interactive runs.
type Decline struct{}

// Confirm implements the space advisor's Prompter.
func (Decline) Confirm(string) (bool, error) { return false, nil }

// Prompter is what NewPrompter returns.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// NewPrompter picks the bubbletea prompt when both in and out are terminals
// and the line prompt otherwise.
func NewPrompter(in *os.File, out *os.File) Prompter {
	if isTerminal(in) && isTerminal(out) {
		return TUIPrompter{In: in, Out: out}
	}
	return NewLinePrompter(in, out)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
