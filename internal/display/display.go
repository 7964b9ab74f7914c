// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar (current recipe, servings,
// list and favorites counts) and an input prompt at the bottom of the
// terminal. All application output is printed above the rendered area via
// Program.Println / Printf, ensuring concurrent writes never garble the
// display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const prompt = "forkify> "

// Status is what the bar shows. RecipeTitle is empty until a recipe is open.
type Status struct {
	RecipeTitle string
	Servings    int
	Liked       bool
	ListItems   int
	Favorites   int
}

// StatusFunc is polled once a second for the bar contents.
type StatusFunc func() Status

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely call
// [UI.Println], [UI.Printf], [UI.SetBusy] and read from [UI.InputChan] at
// any time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	status  StatusFunc
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(status StatusFunc) *UI {
	if status == nil {
		status = func() Status { return Status{} }
	}
	return &UI{
		status:  status,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe. If the program
// hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt on its own line. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// SetBusy shows a spinner with label in the bar; an empty label hides it.
func (u *UI) SetBusy(label string) {
	if u.program != nil && !u.done.Load() {
		u.program.Send(busyMsg(label))
	}
}

// ── Styled print helpers ─────────────────────────────────────────

// PrintInfo prints a conversational line.
func (u *UI) PrintInfo(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintHeading prints a section header such as a recipe title.
func (u *UI) PrintHeading(text string) {
	u.Println(headingStyle.Render("  " + text))
}

// PrintLines prints body lines, one per Println.
func (u *UI) PrintLines(lines []string) {
	for _, l := range lines {
		u.Println(bodyStyle.Render("  " + l))
	}
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(hintStyle.Render("  " + text))
}

// PrintUrgent prints an error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(errorStyle.Render("  " + text))
}

// PrintVoice prints a voice-recognised input line.
func (u *UI) PrintVoice(text string) {
	u.Println(hintStyle.Render("[voice] ") + bodyStyle.Render(text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("forkify") + hintStyle.Render("> ") + echoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop and blocks until the user quits.
func (u *UI) Run() error {
	u.program = tea.NewProgram(newModel(u.status, u.inputCh, u.readyCh, u.PrintUserInput))
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

const historyLimit = 50

type model struct {
	statusFn StatusFunc
	status   Status
	busy     string
	input    textinput.Model
	spinner  spinner.Model
	inputCh  chan<- string
	readyCh  chan struct{}
	echo     func(string)
	width    int

	history []string // submitted lines, oldest first
	recall  int      // index into history while browsing; len(history) when not
}

type (
	tickMsg time.Time
	busyMsg string
)

func newModel(status StatusFunc, inputCh chan<- string, readyCh chan struct{}, echo func(string)) model {
	ti := textinput.New()
	// The prompt stays plain text; ANSI bytes in it throw off textinput's
	// width math.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = echoStyle
	ti.Cursor.Style = promptStyle
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = titleStyle

	return model{
		statusFn: status,
		status:   status(),
		input:    ti,
		spinner:  sp,
		inputCh:  inputCh,
		readyCh:  readyCh,
		echo:     echo,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, pollStatus(), markReady(m.readyCh))
}

func markReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func pollStatus() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			return m.browse(-1), nil
		case tea.KeyDown:
			return m.browse(1), nil
		case tea.KeyEsc:
			m.input.Reset()
			m.recall = len(m.history)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case busyMsg:
		idle := m.busy == ""
		m.busy = string(msg)
		if idle && m.busy != "" {
			return m, m.spinner.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		m.status = m.statusFn()
		return m, tea.Batch(pollStatus(), tea.SetWindowTitle(titleFor(m.status)))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the current line to the app and records it in history.
func (m model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.history = append(m.history, line)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	m.recall = len(m.history)

	m.inputCh <- line
	// Println from a Cmd; calling it inside Update would deadlock.
	echo := m.echo
	return m, func() tea.Msg {
		echo(line)
		return nil
	}
}

// browse moves through previously submitted lines.
func (m model) browse(step int) model {
	if len(m.history) == 0 {
		return m
	}
	m.recall = max(0, min(len(m.history), m.recall+step))
	if m.recall == len(m.history) {
		m.input.Reset()
	} else {
		m.input.SetValue(m.history[m.recall])
		m.input.CursorEnd()
	}
	return m
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderBar())
	b.WriteByte('\n')
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	parts := statusParts(m.status)
	if m.busy != "" {
		parts = append([]string{m.spinner.View() + " " + countStyle.Render(m.busy)}, parts...)
	}
	content := " " + strings.Join(parts, dividerStyle.Render("  │  ")) + " "

	w := m.width
	if w <= 0 {
		w = 80
	}
	return barStyle.Width(w).Render(content)
}

func statusParts(s Status) []string {
	var parts []string
	if s.RecipeTitle == "" {
		parts = append(parts, mutedStyle.Render("no recipe open"))
	} else {
		heart := "♡ "
		if s.Liked {
			heart = heartStyle.Render("♥ ")
		}
		parts = append(parts,
			heart+titleStyle.Render(s.RecipeTitle),
			countStyle.Render(fmt.Sprintf("serves %d", s.Servings)))
	}
	parts = append(parts,
		countStyle.Render(fmt.Sprintf("list %d", s.ListItems)),
		countStyle.Render(fmt.Sprintf("favorites %d", s.Favorites)))
	return parts
}

func titleFor(s Status) string {
	if s.RecipeTitle == "" {
		return "Forkify"
	}
	return fmt.Sprintf("Forkify | %s (serves %d)", s.RecipeTitle, s.Servings)
}
