package main

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voxpilot/voxpilot/pkg/assistant"
)

// Color palette, kept deliberately small.
var (
	accent      = lipgloss.Color("#A8E6CF") // mint green - assistant replies
	promptColor = lipgloss.Color("#FFB3BA") // soft salmon - user input
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(promptColor).Bold(true)
	userStyle   = lipgloss.NewStyle().Foreground(promptColor)
	replyStyle  = lipgloss.NewStyle().Foreground(accent)
	errorStyle  = lipgloss.NewStyle().Foreground(promptColor).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(mutedGray)
	inputStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(promptColor).
			Padding(0, 1)
)

const handleTimeout = 30 * time.Second

// entry is one exchange in the transcript.
type entry struct {
	utterance string
	reply     string
	isError   bool
}

// responseMsg carries the assistant's answer back into the update loop.
type responseMsg struct {
	utterance string
	response  assistant.Response
	err       error
}

type model struct {
	assistant *assistant.Assistant
	input     textinput.Model
	history   []entry
	lastURL   string
	busy      bool
	status    string
	width     int
}

func newModel(a *assistant.Assistant) *model {
	ti := textinput.New()
	ti.Placeholder = `Type what you would say ("switch to github", "go to youtube")`
	ti.Focus()
	ti.CharLimit = 200

	return &model{
		assistant: a,
		input:     ti,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlY:
			if m.lastURL != "" {
				if err := clipboard.WriteAll(m.lastURL); err != nil {
					m.status = "clipboard unavailable"
				} else {
					m.status = "copied " + m.lastURL
				}
			}
			return m, nil

		case tea.KeyEnter:
			utterance := strings.TrimSpace(m.input.Value())
			if utterance == "" || m.busy {
				return m, nil
			}
			m.input.Reset()
			m.busy = true
			m.status = "thinking..."
			return m, handleCmd(m.assistant, utterance)
		}

	case responseMsg:
		m.busy = false
		m.status = ""
		if msg.err != nil {
			m.history = append(m.history, entry{
				utterance: msg.utterance,
				reply:     msg.err.Error(),
				isError:   true,
			})
			return m, nil
		}
		if msg.response.URL != "" {
			m.lastURL = msg.response.URL
		}
		m.history = append(m.history, entry{
			utterance: msg.utterance,
			reply:     msg.response.Text,
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("voxpilot"))
	b.WriteString(hintStyle.Render("  voice-driven browser copilot (typed input stands in for speech)"))
	b.WriteString("\n\n")

	for _, e := range m.history {
		b.WriteString(userStyle.Render("you> " + e.utterance))
		b.WriteString("\n")
		style := replyStyle
		if e.isError {
			style = errorStyle
		}
		b.WriteString(style.Render(e.reply))
		b.WriteString("\n\n")
	}

	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n")

	status := m.status
	if status == "" {
		status = "enter: send · ctrl+y: copy last URL · esc: quit"
	}
	b.WriteString(hintStyle.Render(status))
	b.WriteString("\n")

	return b.String()
}

// handleCmd runs the assistant off the update loop so typing stays
// responsive while the LLM round-trips.
func handleCmd(a *assistant.Assistant, utterance string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
		defer cancel()

		resp, err := a.Handle(ctx, utterance)
		return responseMsg{utterance: utterance, response: resp, err: err}
	}
}
