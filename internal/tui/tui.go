// Package tui provides the Bubble Tea front end for the play editor.
package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/retrobuddy/internal/count"
	"github.com/fakeyudi/retrobuddy/internal/editor"
	"github.com/fakeyudi/retrobuddy/internal/retrosheet"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	incompleteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("237"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// contextRows is how many plays are shown on each side of the cursor.
const contextRows = 3

// InputChangedMsg reports that the event file being edited changed on disk.
type InputChangedMsg struct {
	Path    string
	Removed bool
}

// Options configures a Model.
type Options struct {
	// Filename is shown in the title bar.
	Filename string
	// ConfirmQuit asks before q quits.
	ConfirmQuit bool
	// OnChange is called after every key that reached the session.
	OnChange func(s *editor.Session)
}

// Model is the root Bubble Tea model for the editor.
type Model struct {
	sess *editor.Session
	opts Options
	keys KeyMap
	help help.Model

	jumping bool
	jumpBuf string
	list    viewport.Model

	confirming bool
	notice     string
	width      int
	height     int
	ready      bool
}

// New creates a Model driving sess.
func New(sess *editor.Session, opts Options) Model {
	return Model{
		sess: sess,
		opts: opts,
		keys: DefaultKeyMap(),
		help: help.New(),
	}
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.list = viewport.New(msg.Width, max(1, msg.Height-4))
		m.list.SetContent(m.renderPlayList())
		return m, nil

	case InputChangedMsg:
		if msg.Removed {
			m.notice = filepath.Base(msg.Path) + " was moved or deleted; edits keep saving to the output directory"
		} else {
			m.notice = filepath.Base(msg.Path) + " changed on disk; restart to load the new version"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.confirming {
		m.confirming = false
		if msg.String() == "y" {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.jumping {
		return m.handleJumpKey(msg)
	}

	s := m.sess
	shell := s.Mode() != editor.Detail
	switch {
	case key.Matches(msg, m.keys.Prev):
		s.PreviousAtBat()
	case key.Matches(msg, m.keys.Next):
		s.NextAtBat()
	case key.Matches(msg, m.keys.Incomplete):
		s.JumpToIncomplete()
	case key.Matches(msg, m.keys.PrevGame):
		s.PreviousGame()
	case key.Matches(msg, m.keys.NextGame):
		s.NextGame()
	case key.Matches(msg, m.keys.UndoAny):
		s.Undo()
	case shell && key.Matches(msg, m.keys.Undo):
		s.Undo()
	case shell && key.Matches(msg, m.keys.Clear):
		if s.Mode() == editor.Pitch {
			s.ClearPitches()
		} else {
			s.ClearResult()
		}
	case shell && key.Matches(msg, m.keys.Jump):
		m.jumping = true
		m.jumpBuf = ""
		m.list.SetContent(m.renderPlayList())
		m.list.SetYOffset(s.AtBatIndex() - contextRows)
		return m, nil
	case shell && key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case shell && key.Matches(msg, m.keys.Quit):
		if m.opts.ConfirmQuit {
			m.confirming = true
			return m, nil
		}
		return m, tea.Quit
	default:
		s.HandleKey(msg.String())
	}
	m.changed()
	return m, nil
}

func (m *Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case k == "esc" || k == "j":
		m.jumping = false
	case k == "backspace":
		if m.jumpBuf != "" {
			m.jumpBuf = m.jumpBuf[:len(m.jumpBuf)-1]
		}
	case k == "enter":
		m.jumping = false
		if n, err := strconv.Atoi(m.jumpBuf); err == nil {
			m.sess.JumpTo(n - 1)
			m.changed()
		}
	case len(k) == 1 && k[0] >= '0' && k[0] <= '9':
		if len(m.jumpBuf) < 4 {
			m.jumpBuf += k
		}
	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return *m, cmd
	}
	return *m, nil
}

func (m *Model) changed() {
	if m.opts.OnChange != nil {
		m.opts.OnChange(m.sess)
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}
	s := m.sess
	g := s.Game()

	title := fmt.Sprintf("  retrobuddy  %s  ·  %s (%d/%d)", m.opts.Filename, g.ID, s.GameIndex()+1, len(s.Games()))
	if d, ok := g.InfoValue("date"); ok {
		title += "  " + d
	}
	titleBar := titleStyle.Width(m.width).Render(title)

	var body string
	if m.jumping {
		body = m.list.View() + "\n" + labelStyle.Render("  Go to play: ") + m.jumpBuf + dimStyle.Render("_  (enter go, esc cancel)")
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.renderModeTabs(),
			m.renderContext(),
			m.renderCurrent(),
			m.renderPrompt(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleBar, body, m.renderStatus(), m.renderHelp())
}

// ── Renderers ─────────────────

func (m Model) renderModeTabs() string {
	var parts []string
	for i, mode := range []editor.Mode{editor.Pitch, editor.Result, editor.Detail} {
		label := " " + mode.String() + " "
		if mode == m.sess.Mode() {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
		if i < 2 {
			parts = append(parts, tabSepStyle.Render("│"))
		}
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func playRow(i int, p *retrosheet.Play) string {
	mark := " "
	if editor.IsIncomplete(p) {
		mark = incompleteStyle.Render("•")
	}
	edited := " "
	if p.Edited {
		edited = "*"
	}
	return fmt.Sprintf("%s %4d  %2d %-4s %-9s %s  %-14s %s%s",
		mark, i+1, p.Inning, p.Team, p.Batter, p.Count, p.Pitches, p.Result, edited)
}

func (m Model) renderContext() string {
	s := m.sess
	plays := s.Game().Plays
	cur := s.AtBatIndex()
	lo, hi := max(0, cur-contextRows), min(len(plays), cur+contextRows+1)

	var sb strings.Builder
	sb.WriteString("\n")
	for i := lo; i < hi; i++ {
		row := playRow(i, &plays[i])
		if i == cur {
			row = selectedRowStyle.Width(max(1, m.width-2)).Render(row)
		}
		sb.WriteString("  " + row + "\n")
	}
	return sb.String()
}

func (m Model) renderCurrent() string {
	s := m.sess
	p := s.Current()
	if p == nil {
		return dimStyle.Render("  (game has no plays)")
	}
	t := s.Tally()
	c := t.Display()

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("  %-10s", label)) + " " + value + "\n"
	}
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render(fmt.Sprintf("  Play %d of %d", s.AtBatIndex()+1, len(s.Game().Plays))) + "\n")
	sb.WriteString(row("Batter:", fmt.Sprintf("%s  (inning %d, %s)", p.Batter, p.Inning, p.Team)))
	countText := fmt.Sprintf("%d-%d", c.Balls, c.Strikes)
	if o := t.Outcome(); o != count.InProgress {
		countText += "  " + o.String()
	}
	if p.OriginalCount == count.Unknown {
		countText += dimStyle.Render("  (was ??)")
	}
	sb.WriteString(row("Count:", countText))
	sb.WriteString(row("Pitches:", codeStyle.Render(p.Pitches)))
	sb.WriteString(row("Result:", codeStyle.Render(p.Result)))
	return sb.String()
}

func renderOptions(entries []editor.KeyEntry) string {
	var sb strings.Builder
	for i, e := range entries {
		item := keyStyle.Render(e.Key) + " " + e.Label
		if e.Code != "" && e.Code != e.Label {
			item += dimStyle.Render(" " + e.Code)
		}
		sb.WriteString("  " + item)
		if (i+1)%4 == 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String() + "\n"
}

func (m Model) renderPrompt() string {
	var sb strings.Builder
	switch m.sess.Mode() {
	case editor.Pitch:
		sb.WriteString(sectionHeader.Render("  Pitches") + "\n")
		if m.sess.AwaitingPickoffBase() {
			sb.WriteString(hintStyle.Render("  Pickoff throw to base 1, 2 or 3") + "\n")
		}
		sb.WriteString(renderOptions(editor.PitchKeys))
		sb.WriteString(renderOptions(editor.PitchActions))
	case editor.Result:
		sb.WriteString(sectionHeader.Render("  Result") + "\n")
		sb.WriteString(renderOptions(editor.ResultKeys))
		sb.WriteString(renderOptions(editor.ImmediateKeys))
	case editor.Detail:
		b := m.sess.Builder()
		if b == nil {
			sb.WriteString(sectionHeader.Render("  Choose a result") + "\n")
			sb.WriteString(renderOptions(editor.ResultKeys))
			break
		}
		p := b.Prompt()
		sb.WriteString(sectionHeader.Render("  "+p.Title) + dimStyle.Render("  · "+p.Stage) + "\n")
		if len(p.Picked) > 0 {
			sb.WriteString(labelStyle.Render("  Picked:") + " " + strings.Join(p.Picked, ", ") + "\n")
		}
		sb.WriteString(renderOptions(p.Options))
	}
	return sb.String()
}

func (m Model) renderStatus() string {
	msg := m.sess.Hint()
	var text string
	switch {
	case m.confirming:
		text = noticeStyle.Render("Quit? (y/n)")
	case m.notice != "":
		text = noticeStyle.Render(m.notice)
		if msg != "" {
			text += "  " + hintStyle.Render(msg)
		}
	case msg != "":
		text = hintStyle.Render(msg)
	}
	edited := 0
	for _, g := range m.sess.Games() {
		if g.Edited() {
			edited++
		}
	}
	right := fmt.Sprintf("%d edited game(s)", edited)
	pad := max(1, m.width-lipgloss.Width(text)-len(right)-2)
	return statusBarStyle.Width(m.width).Render(text + strings.Repeat(" ", pad) + right)
}

func (m Model) renderHelp() string {
	if m.sess.Mode() == editor.Detail {
		return dimStyle.Render("  DETAIL: keys go to the builder · tab leaves · ctrl+z undo · arrows move")
	}
	return m.help.View(m.keys)
}

func (m Model) renderPlayList() string {
	var sb strings.Builder
	plays := m.sess.Game().Plays
	for i := range plays {
		row := playRow(i, &plays[i])
		if i == m.sess.AtBatIndex() {
			row = selectedRowStyle.Render(row)
		}
		sb.WriteString("  " + row + "\n")
	}
	return sb.String()
}

// Run starts the editor on sess and blocks until the user quits. send, if
// non-nil, receives a function that delivers messages to the running program.
func Run(sess *editor.Session, opts Options, send func(func(tea.Msg))) error {
	p := tea.NewProgram(New(sess, opts), tea.WithAltScreen())
	if send != nil {
		send(p.Send)
	}
	_, err := p.Run()
	return err
}
