package cli

import (
	"errors"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
)

// errAborted signals that the user quit while a pipeline stage was in
// flight. The stage itself is simply abandoned, never half-applied.
var errAborted = errors.New("aborted by user")

// Theme holds the color scheme for CLI output.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// stageDoneMsg carries the result of the wrapped stage.
type stageDoneMsg struct {
	err error
}

// spinnerModel is the bubbletea model shown while a blocking pipeline
// stage (typically the extraction call) runs.
type spinnerModel struct {
	spinner spinner.Model
	label   string
	run     func() error
	theme   Theme
	err     error
	done    bool
	aborted bool
}

func newSpinnerModel(label string, run func() error) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		label:   label,
		run:     run,
		theme:   defaultTheme,
	}
}

// Init starts the spinner animation and kicks off the stage.
func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.start(),
	)
}

// start runs the stage in a command goroutine so Update() stays responsive.
func (m spinnerModel) start() tea.Cmd {
	return func() tea.Msg {
		return stageDoneMsg{err: m.run()}
	}
}

// Update handles messages and returns the updated model.
func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.aborted = true
			return m, tea.Quit
		}

	case stageDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner line.
func (m spinnerModel) View() tea.View {
	if m.done || m.aborted {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s %s\n",
		m.spinner.View(),
		m.theme.statusStyle().Render(m.label),
	))
}

// runWithSpinner runs fn while showing an animated spinner. In a
// non-interactive terminal it prints the label and runs fn directly.
// Returns errAborted if the user quit before fn finished.
func runWithSpinner(label string, interactive bool, fn func() error) error {
	if !interactive {
		fmt.Println(label)
		return fn()
	}

	p := tea.NewProgram(newSpinnerModel(label, fn))
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(spinnerModel); ok {
		if m.aborted {
			return errAborted
		}
		return m.err
	}
	return nil
}
