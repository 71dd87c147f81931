// Package tui implements the interactive chat surface over the
// conversation engine. It is a thin client: every keystroke of state
// lives in the engine's session, the TUI only renders turns.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nadiprasetio/catat-cuan/internal/cli"
	"github.com/nadiprasetio/catat-cuan/internal/common"
	"github.com/nadiprasetio/catat-cuan/internal/model"
	"github.com/nadiprasetio/catat-cuan/internal/session"
)

// Advancer is the slice of the engine the chat needs: one turn in, one
// reply out.
type Advancer interface {
	Greeting(sess *model.ConversationSession) (string, error)
	Advance(ctx context.Context, sess *model.ConversationSession, message string, today time.Time) (string, error)
}

// line is one rendered chat line.
type line struct {
	text    string
	fromBot bool
}

// Model is the bubbletea model for the chat loop.
type Model struct {
	ctx      context.Context
	engine   Advancer
	sessions session.Store
	sess     *model.ConversationSession
	input    textinput.Model
	lines    []line
	now      func() time.Time
	err      error
	width    int
	done     bool
}

// NewModel creates a chat model bound to a fresh session.
func NewModel(ctx context.Context, engine Advancer, sessions session.Store, userID string) (*Model, error) {
	sess, err := sessions.Create(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	greeting, err := engine.Greeting(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to render greeting: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Tulis pesan..."
	ti.Prompt = cli.PromptStyle.Render("> ")
	ti.Focus()

	return &Model{
		ctx:      ctx,
		engine:   engine,
		sessions: sessions,
		sess:     sess,
		input:    ti,
		lines:    []line{{text: greeting, fromBot: true}},
		now:      time.Now,
	}, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs one engine turn for the typed message.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if m.done {
		return m, tea.Quit
	}

	m.lines = append(m.lines, line{text: text})

	// The stored session stays untouched until the turn succeeds; an
	// engine error aborts the turn and the working copy is re-fetched.
	working, err := m.sessions.Get(m.ctx, m.sess.ID)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}

	reply, err := m.engine.Advance(m.ctx, working, text, m.now())
	if err != nil {
		if errors.Is(err, common.ErrSessionClosed) {
			m.done = true
			return m, tea.Quit
		}
		m.lines = append(m.lines, line{
			text:    cli.FormatError("Lagi ada gangguan, coba ulangi ya."),
			fromBot: true,
		})
		return m, nil
	}

	if err := m.sessions.Put(m.ctx, working); err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.sess = working

	m.lines = append(m.lines, line{text: reply, fromBot: true})
	if working.Closed() {
		m.done = true
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(cli.MoneyIcon + " catat-cuan"))
	b.WriteString("\n")

	for _, l := range m.lines {
		if l.fromBot {
			b.WriteString(cli.BotStyle.Render(cli.BotIcon+" "+l.text) + "\n")
		} else {
			b.WriteString(cli.UserStyle.Render("kamu: "+l.text) + "\n")
		}
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(cli.SubtleStyle.Render("Sesi selesai. Tekan Enter untuk keluar."))
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n" + cli.SubtleStyle.Render("Enter kirim · Esc keluar · ketik 'batal' untuk membatalkan"))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// Err returns the fatal error that ended the chat, if any.
func (m *Model) Err() error {
	return m.err
}
