package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/theapemachine/hybrid-travel/pkg/rag"
)

const gap = "\n\n"

const welcome = `Vietnam travel assistant.
Ask about places, hotels, food or itineraries and press Enter.
Type exit, quit or an empty line to leave.`

// Asker answers one question.
type Asker interface {
	Answer(ctx context.Context, query string) (rag.Answer, error)
}

type model struct {
	ctx      context.Context
	asker    Asker
	viewport viewport.Model
	textarea textarea.Model
	messages []string
	waiting  bool
}

// New returns the interactive chat program's model.
func New(ctx context.Context, asker Asker) tea.Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about Vietnam..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 500

	ta.SetWidth(80)
	ta.SetHeight(3)

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(80, 20)
	vp.SetContent(titleStyle.Render(welcome))

	return model{
		ctx:      ctx,
		asker:    asker,
		textarea: ta,
		viewport: vp,
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.textarea.SetWidth(msg.Width)
		m.viewport.Height = msg.Height - m.textarea.Height() - lipgloss.Height(gap) - 2
		m.refresh()

		return m, nil

	case answerMsg:
		m.waiting = false
		m.push(AssistantStyle.Render("Assistant: ") + msg.answer.Response)
		m.push(StatusStyle.Render(Sources(msg.answer)))

		return m, nil

	case errorMsg:
		m.waiting = false
		m.push(ErrorStyle.Render("Error: ") + msg.err.Error())

		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, defaultKeymap.quit) {
			return m, tea.Quit
		}

		if key.Matches(msg, defaultKeymap.send) {
			return m.send()
		}
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m model) send() (tea.Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}

	question := strings.TrimSpace(m.textarea.Value())
	if IsExit(question) {
		return m, tea.Quit
	}

	m.textarea.Reset()
	m.push(UserStyle.Render("You: ") + question)
	m.waiting = true

	ctx, asker := m.ctx, m.asker

	return m, func() tea.Msg {
		answer, err := asker.Answer(ctx, question)
		if err != nil {
			return errorMsg{err: err}
		}

		return answerMsg{answer: answer}
	}
}

func (m *model) push(line string) {
	m.messages = append(m.messages, line)
	m.refresh()
}

func (m *model) refresh() {
	if len(m.messages) == 0 {
		return
	}

	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(m.messages, "\n")))
	m.viewport.GotoBottom()
}

func (m model) View() string {
	status := ""
	if m.waiting {
		status = StatusStyle.Render("thinking...")
	}

	return fmt.Sprintf(
		"%s%s%s\n%s",
		m.viewport.View(),
		gap,
		m.textarea.View(),
		status,
	)
}

// Sources renders the retrieval counts shown under each answer.
func Sources(answer rag.Answer) string {
	line := fmt.Sprintf("[%d places, %d relationships]", answer.VectorResults, answer.GraphResults)

	if answer.Fallback {
		line += " [offline answer]"
	}

	return line
}
