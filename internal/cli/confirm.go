package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(colorYellow)
	inputStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// overwritePrompt is the question asked before replacing an existing output.
func overwritePrompt(path string) string {
	return fmt.Sprintf("%s exists - OK to overwrite(y,n)?", path)
}

// isYes accepts any answer starting with y or Y after trimming.
func isYes(answer string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}

// confirmModel is a single-line y/n prompt.
type confirmModel struct {
	prompt   string
	input    string
	answered bool
	yes      bool
}

func newConfirmModel(prompt string) confirmModel {
	return confirmModel{prompt: prompt}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.answered, m.yes = true, false
		return m, tea.Quit
	case tea.KeyEnter:
		m.answered, m.yes = true, isYes(m.input)
		return m, tea.Quit
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		answer := "n"
		if m.yes {
			answer = "y"
		}
		return promptStyle.Render(m.prompt) + " " + StyleDim.Render(answer) + "\n"
	}
	return promptStyle.Render(m.prompt) + " " + inputStyle.Render(m.input) + StyleDim.Render("█")
}

// confirm asks prompt and reports whether the user agreed. A terminal on
// stdin gets the interactive prompt; anything else is read as one line.
func (c *CLI) confirm(ctx context.Context, prompt string) (bool, error) {
	if c.isTerminal() {
		return c.confirmTUI(ctx, prompt)
	}
	return c.confirmLine(prompt)
}

func (c *CLI) confirmTUI(ctx context.Context, prompt string) (bool, error) {
	p := tea.NewProgram(newConfirmModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(c.In),
		tea.WithOutput(c.Out),
	)
	final, err := p.Run()
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	m, ok := final.(confirmModel)
	return ok && m.yes, nil
}

func (c *CLI) confirmLine(prompt string) (bool, error) {
	fmt.Fprint(c.Out, prompt+" ")
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	if err == io.EOF {
		fmt.Fprintln(c.Out)
	}
	return isYes(line), nil
}

// stdinIsTerminal reports whether r is an interactive terminal.
func stdinIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
