package overlay

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"globalaccel/keys"
)

// MaxKeystrokes is the longest chord the recorder accepts.
const MaxKeystrokes = 4

type recorderKeyMap struct {
	Done   key.Binding
	Cancel key.Binding
	Undo   key.Binding
}

func defaultRecorderKeyMap() recorderKeyMap {
	return recorderKeyMap{
		Done:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Undo:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "undo")),
	}
}

// recordTimeoutMsg finishes a recording that has been idle. gen ties it to
// the keystroke that scheduled it.
type recordTimeoutMsg struct{ gen int }

// ShortcutRecorder captures a shortcut of up to MaxKeystrokes keystrokes.
// Enter, Esc and Backspace control the recorder and cannot be recorded
// on their own.
type ShortcutRecorder struct {
	Title     string
	Submitted bool
	Canceled  bool

	keyMap   recorderKeyMap
	value    keys.Shortcut
	gen      int
	timeout  time.Duration
	conflict func(keys.Shortcut) string
	warning  string
	width    int
}

// NewShortcutRecorder returns a recorder that submits on its own once no
// key has been pressed for timeout. A zero timeout waits for Enter.
func NewShortcutRecorder(title string, timeout time.Duration) *ShortcutRecorder {
	return &ShortcutRecorder{
		Title:   title,
		keyMap:  defaultRecorderKeyMap(),
		timeout: timeout,
	}
}

// SetConflictCheck installs a function that describes why a recorded
// shortcut is unavailable, or returns "".
func (r *ShortcutRecorder) SetConflictCheck(check func(keys.Shortcut) string) {
	r.conflict = check
}

func (r *ShortcutRecorder) SetWidth(width int) {
	r.width = width
}

// Value returns the keystrokes recorded so far.
func (r *ShortcutRecorder) Value() keys.Shortcut {
	return append(keys.Shortcut(nil), r.value...)
}

// HandleKeyPress records or interprets one key. It returns true once the
// recorder is closed, and a command that schedules the idle timeout.
func (r *ShortcutRecorder) HandleKeyPress(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, r.keyMap.Cancel):
		r.Canceled = true
		return true, nil
	case key.Matches(msg, r.keyMap.Done):
		if len(r.value) == 0 {
			return false, nil
		}
		r.Submitted = true
		return true, nil
	case key.Matches(msg, r.keyMap.Undo):
		if len(r.value) > 0 {
			r.value = r.value[:len(r.value)-1]
			r.check()
		}
		r.gen++
		return false, nil
	}

	c, ok := keys.FromKeyMsg(msg)
	if !ok {
		return false, nil
	}
	r.value = append(r.value, keys.Variant{c})
	r.check()
	if len(r.value) == MaxKeystrokes {
		r.Submitted = true
		return true, nil
	}
	return false, r.scheduleTimeout()
}

// HandleTimeout submits the recording if msg belongs to the latest
// keystroke.
func (r *ShortcutRecorder) HandleTimeout(msg recordTimeoutMsg) bool {
	if msg.gen != r.gen || len(r.value) == 0 {
		return false
	}
	r.Submitted = true
	return true
}

func (r *ShortcutRecorder) scheduleTimeout() tea.Cmd {
	r.gen++
	if r.timeout <= 0 {
		return nil
	}
	gen := r.gen
	return tea.Tick(r.timeout, func(time.Time) tea.Msg {
		return recordTimeoutMsg{gen: gen}
	})
}

func (r *ShortcutRecorder) check() {
	r.warning = ""
	if r.conflict != nil && len(r.value) > 0 {
		r.warning = r.conflict(r.value)
	}
}

// Render renders the recorder box.
func (r *ShortcutRecorder) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)
	if r.width > 0 {
		style = style.Width(r.width - 2)
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		MarginBottom(1)
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))

	value := "press a key..."
	if len(r.value) > 0 {
		value = valueStyle.Render(r.value.String())
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(r.Title) + "\n")
	content.WriteString(value + "\n\n")
	if r.warning != "" {
		content.WriteString(warnStyle.Render(r.warning) + "\n\n")
	}
	var help []string
	for _, b := range []key.Binding{r.keyMap.Done, r.keyMap.Undo, r.keyMap.Cancel} {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	content.WriteString(hintStyle.Render(strings.Join(help, " • ")))

	return style.Render(content.String())
}

// recorderModel runs a ShortcutRecorder as a standalone program.
type recorderModel struct {
	rec *ShortcutRecorder
}

func (m recorderModel) Init() tea.Cmd { return nil }

func (m recorderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.rec.SetWidth(min(msg.Width, 60))
	case tea.KeyMsg:
		done, cmd := m.rec.HandleKeyPress(msg)
		if done {
			return m, tea.Quit
		}
		return m, cmd
	case recordTimeoutMsg:
		if m.rec.HandleTimeout(msg) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m recorderModel) View() string {
	if m.rec.Submitted || m.rec.Canceled {
		return ""
	}
	return m.rec.Render()
}

// RecordShortcut runs rec on the terminal until it is submitted or
// canceled. ok is false when the user canceled.
func RecordShortcut(rec *ShortcutRecorder, opts ...tea.ProgramOption) (keys.Shortcut, bool, error) {
	if _, err := tea.NewProgram(recorderModel{rec: rec}, opts...).Run(); err != nil {
		return nil, false, err
	}
	if !rec.Submitted {
		return nil, false, nil
	}
	return rec.Value(), true, nil
}
