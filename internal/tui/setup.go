// ABOUTME: Interactive TUI wizard for configuring curio storage and feed source.
// ABOUTME: 3-step bubbletea model collecting backend, data directory and feed URL.
package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Step represents the current wizard step.
type Step int

const (
	StepBackend Step = iota
	StepDataDir
	StepFeedURL
	StepDone
)

const stepCount = int(StepDone)

// Settings are the values the wizard collects.
type Settings struct {
	Backend string
	DataDir string
	FeedURL string
}

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step     Step
	inputs   [stepCount]textinput.Model
	defaults Settings
	problem  string
	quitting bool
}

var (
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("178"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var stepTitles = [stepCount]string{
	"Storage Backend",
	"Data Directory",
	"Feed URL",
}

// NewSetupModel creates a wizard pre-filled with current values. Empty
// answers fall back to defaults.
func NewSetupModel(current, defaults Settings) SetupModel {
	values := [stepCount]string{current.Backend, current.DataDir, current.FeedURL}
	placeholders := [stepCount]string{defaults.Backend, defaults.DataDir, defaults.FeedURL}

	m := SetupModel{step: StepBackend, defaults: defaults}
	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.Width = 60
		if values[i] != "" {
			input.SetValue(values[i])
		}
		m.inputs[i] = input
	}
	m.inputs[StepBackend].Focus()
	return m
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.step == StepDone {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}
	}

	// Keys and cursor blinks go to the active input
	var cmd tea.Cmd
	m.inputs[m.step], cmd = m.inputs[m.step].Update(msg)
	return m, cmd
}

func (m SetupModel) handleEnter() (tea.Model, tea.Cmd) {
	input := &m.inputs[m.step]
	val := strings.TrimSpace(input.Value())

	switch m.step {
	case StepBackend:
		if val == "" {
			val = m.defaults.Backend
		}
		val = strings.ToLower(val)
		if val != "sqlite" && val != "yaml" {
			m.problem = fmt.Sprintf("unknown backend %q", val)
			return m, nil
		}
	case StepDataDir:
		if val == "" {
			val = m.defaults.DataDir
		}
	case StepFeedURL:
		if val == "" {
			val = m.defaults.FeedURL
		}
		if u, err := url.Parse(val); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			m.problem = "feed URL must be an http or https URL"
			return m, nil
		}
	}

	input.SetValue(val)
	input.Blur()
	m.problem = ""
	m.step++

	if m.step == StepDone {
		return m, tea.Quit
	}
	m.inputs[m.step].Focus()
	return m, textinput.Blink
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   CURIO"))
	b.WriteString(titleStyle.Render(" - Setup"))
	b.WriteString("\n\n")

	if m.step == StepDone {
		b.WriteString(successStyle.Render("Setup complete!"))
		b.WriteString("\n\n")
		b.WriteString(m.summary())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.summary())
	if m.step > StepBackend {
		b.WriteString("\n")
	}
	b.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d: %s", m.step+1, stepCount, stepTitles[m.step])))
	b.WriteString("\n")
	b.WriteString(stepStyle.Render(m.hint()))
	b.WriteString("\n")
	b.WriteString(m.inputs[m.step].View())
	b.WriteString("\n")
	if m.problem != "" {
		b.WriteString(problemStyle.Render(m.problem))
		b.WriteString("\n")
	}

	return b.String()
}

func (m SetupModel) hint() string {
	switch m.step {
	case StepBackend:
		return fmt.Sprintf("(sqlite or yaml, press Enter for %s)", m.defaults.Backend)
	case StepDataDir:
		return fmt.Sprintf("(press Enter for default: %s)", m.defaults.DataDir)
	default:
		return "(press Enter for the default feed)"
	}
}

// summary lists the answers given so far.
func (m SetupModel) summary() string {
	var b strings.Builder
	labels := [stepCount]string{"Backend", "Data directory", "Feed URL"}
	for i := 0; i < int(m.step) && i < stepCount; i++ {
		fmt.Fprintf(&b, "  %-15s %s\n", labels[i]+":", m.inputs[i].Value())
	}
	return b.String()
}

// Result returns the entered values.
func (m SetupModel) Result() Settings {
	return Settings{
		Backend: m.inputs[StepBackend].Value(),
		DataDir: m.inputs[StepDataDir].Value(),
		FeedURL: m.inputs[StepFeedURL].Value(),
	}
}

// ShouldSave returns true if the wizard completed and the user did not cancel.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
