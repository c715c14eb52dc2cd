package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AssistantPort is the TUI-facing subset of the assistant.
type AssistantPort interface {
	Respond(query string) string
	SubmitFeedback(query, response string, rating int) error
}

// Model is the Bubble Tea model for the chat interface. One request is
// handled to completion per Enter press; the event loop itself guarantees
// submissions never overlap.
type Model struct {
	assistant    AssistantPort
	input        textinput.Model
	viewport     viewport.Model
	transcript   []string
	status       string
	ready        bool
	ratingMode   bool
	lastQuery    string
	lastResponse string
}

// New creates a new chat model instance.
func New(assistant AssistantPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a banking question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		assistant: assistant,
		input:     ti,
		viewport:  vp,
		status:    "Welcome to TrustBank. Ctrl+R rates the last answer.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + input box + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.ratingMode {
			return m.updateRating(msg)
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				answer := m.assistant.Respond(q)
				m.lastQuery = q
				m.lastResponse = answer
				m.transcript = append(m.transcript,
					userStyle.Render("You: ")+q,
					botStyle.Render("Bot: ")+answer,
					"")
				m.input.SetValue("")
				m.status = "Ctrl+R to rate this answer."
				m.viewport.SetContent(m.renderTranscript())
				m.viewport.GotoBottom()
				return m, nil
			}
		case "ctrl+r":
			if m.lastResponse != "" {
				m.ratingMode = true
				m.status = "Rate the last answer 1-5 (Esc to cancel)"
				return m, nil
			}
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateRating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "2", "3", "4", "5":
		rating := int(msg.String()[0] - '0')
		if err := m.assistant.SubmitFeedback(m.lastQuery, m.lastResponse, rating); err != nil {
			m.status = "Could not record feedback: " + err.Error()
		} else {
			m.status = fmt.Sprintf("Thanks! Recorded a rating of %d.", rating)
		}
		m.ratingMode = false
		return m, nil
	case "esc":
		m.ratingMode = false
		m.status = "Rating cancelled."
		return m, nil
	}
	return m, nil
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("TrustBank Assistant")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet. Say hi!"
	}
	return strings.Join(m.transcript, "\n")
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
