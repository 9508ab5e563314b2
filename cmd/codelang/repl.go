package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const (
	mainPrompt         = "code> "
	continuationPrompt = "  ... "
)

var (
	colorAccent  = lipgloss.Color("#2563EB")
	colorOK      = lipgloss.Color("#059669")
	colorFailure = lipgloss.Color("#DC2626")
	colorDim     = lipgloss.Color("#6B7280")
	colorWarning = lipgloss.Color("#D97706")

	stylePrompt  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleTitle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Padding(0, 1)
	styleResult  = lipgloss.NewStyle().Foreground(colorOK)
	styleFailure = lipgloss.NewStyle().Foreground(colorFailure)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleName    = lipgloss.NewStyle().Foreground(colorWarning)
	stylePanel   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)

// replCommands are the colon commands understood by both front ends.
var replCommands = []struct {
	name  string
	alias string
	desc  string
}{
	{":help", ":h", "toggle key and command help"},
	{":vars", ":v", "toggle the variables panel"},
	{":clear", ":c", "clear the transcript"},
	{":reset", ":r", "drop every binding"},
	{":quit", ":q", "leave the REPL"},
}

// replKeys implements help.KeyMap so the footer and the help panel are
// generated from the bindings themselves.
type replKeys struct {
	Submit   key.Binding
	Prev     key.Binding
	Next     key.Binding
	Complete key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Vars     key.Binding
	Help     key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

func newREPLKeys() replKeys {
	return replKeys{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Prev:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous input")),
		Next:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next input")),
		Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Vars:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "vars")),
		Help:     key.NewBinding(key.WithKeys("ctrl+k", "f1"), key.WithHelp("ctrl+k", "help")),
		Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k replKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Vars, k.Clear, k.Quit}
}

func (k replKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Complete, k.Prev, k.Next},
		{k.PageUp, k.PageDown},
		{k.Vars, k.Help, k.Clear, k.Quit},
	}
}

type transcriptEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	input      textinput.Model
	transcript viewport.Model
	help       help.Model
	keys       replKeys
	session    *replSession

	pending   []string
	entries   []transcriptEntry
	recall    []string
	recallIdx int

	width    int
	height   int
	showVars bool
	quitting bool
	ready    bool
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var common commonFlags
	common.register(fs)
	plain := fs.Bool("plain", false, "use the line editor instead of the full-screen interface")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, logger, err := common.load()
	if err != nil {
		return err
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
	fullScreen := interactive && !*plain

	session, err := newREPLSession(cfg, logger, fullScreen)
	if err != nil {
		return err
	}
	if !fullScreen {
		return runPlainREPL(session, interactive)
	}
	_, err = tea.NewProgram(newREPLModel(session), tea.WithAltScreen()).Run()
	return err
}

func newREPLModel(session *replSession) replModel {
	input := textinput.New()
	input.Placeholder = "statement, or :help"
	input.Prompt = mainPrompt
	input.PromptStyle = stylePrompt
	input.CharLimit = 1000
	input.Focus()

	return replModel{
		input:      input,
		transcript: viewport.New(0, 0),
		help:       help.New(),
		keys:       newREPLKeys(),
		session:    session,
		recallIdx:  -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		return m.layout(), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.entries = nil
			return m.layout(), nil
		case key.Matches(msg, m.keys.Vars):
			m.showVars = !m.showVars
			return m.layout(), nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m.layout(), nil
		case key.Matches(msg, m.keys.Prev):
			return m.recallStep(-1), nil
		case key.Matches(msg, m.keys.Next):
			return m.recallStep(1), nil
		case key.Matches(msg, m.keys.Complete):
			return m.handleAutocomplete(), nil
		case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// recallStep moves through previously submitted inputs; stepping past the
// newest entry clears the line.
func (m replModel) recallStep(delta int) replModel {
	if len(m.recall) == 0 {
		return m
	}
	switch {
	case m.recallIdx == -1 && delta < 0:
		m.recallIdx = len(m.recall) - 1
	case m.recallIdx == -1:
		return m
	default:
		m.recallIdx = max(m.recallIdx+delta, 0)
	}
	if m.recallIdx >= len(m.recall) {
		m.recallIdx = -1
		m.input.SetValue("")
		return m
	}
	m.input.SetValue(m.recall[m.recallIdx])
	m.input.CursorEnd()
	return m
}

// submit evaluates the buffered statement, or holds the line back while the
// statement is still unfinished.
func (m replModel) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")
	m.recallIdx = -1

	if len(m.pending) == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return m, nil
		}
		if strings.HasPrefix(trimmed, ":") {
			return m.runCommand(trimmed)
		}
	}

	source := strings.Join(append(m.pending, line), "\n")
	res := m.session.evaluate(source)
	if res.incomplete {
		m.pending = append(m.pending, line)
		m.input.Prompt = continuationPrompt
		return m.layout(), nil
	}

	m.pending = nil
	m.input.Prompt = mainPrompt
	m.recall = append(m.recall, source)
	m.entries = append(m.entries, transcriptEntry{input: source, output: res.output, isErr: res.isErr})
	return m.layout(), nil
}

func (m replModel) runCommand(input string) (tea.Model, tea.Cmd) {
	name := strings.Fields(input)[0]
	switch name {
	case ":help", ":h":
		m.help.ShowAll = !m.help.ShowAll
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":clear", ":c":
		m.entries = nil
	case ":reset", ":r":
		m.session.reset()
		m.entries = append(m.entries, transcriptEntry{input: input, output: "environment reset"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.entries = append(m.entries, transcriptEntry{
			input:  input,
			output: "unknown command " + name + ", try :help",
			isErr:  true,
		})
	}
	return m.layout(), nil
}

func (m replModel) handleAutocomplete() replModel {
	value := m.input.Value()
	start := len(value)
	for start > 0 && isWordRune(rune(value[start-1])) {
		start--
	}
	word := value[start:]
	if word == "" {
		return m
	}

	matches := m.session.completions(word)
	switch len(matches) {
	case 0:
	case 1:
		m.input.SetValue(value[:start] + matches[0])
		m.input.CursorEnd()
	default:
		m.entries = append(m.entries, transcriptEntry{output: strings.Join(matches, "  ")})
		m = m.layout()
	}
	return m
}

// layout sizes the transcript to whatever the panels leave over and
// re-renders it scrolled to the newest entry.
func (m replModel) layout() replModel {
	m.help.Width = m.width
	m.input.Width = max(m.width-len(mainPrompt)-2, 10)

	chrome := lipgloss.Height(m.header()) + lipgloss.Height(m.footer()) + 1 + len(m.pending)
	if m.showVars {
		chrome += lipgloss.Height(m.varsPanel())
	}
	if m.help.ShowAll {
		chrome += lipgloss.Height(commandsPanel())
	}
	m.transcript.Width = m.width
	m.transcript.Height = max(m.height-chrome, 1)
	m.transcript.SetContent(renderTranscript(m.entries))
	m.transcript.GotoBottom()
	return m
}

func renderTranscript(entries []transcriptEntry) string {
	var b strings.Builder
	for _, e := range entries {
		if e.input != "" {
			b.WriteString(styleDim.Render("› "))
			b.WriteString(strings.ReplaceAll(e.input, "\n", "\n  "))
			b.WriteString("\n")
		}
		switch {
		case e.isErr:
			b.WriteString(styleFailure.Render(e.output))
			b.WriteString("\n")
		case e.output != "":
			b.WriteString(styleResult.Render(e.output))
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m replModel) header() string {
	return styleTitle.Render("CODE") + styleDim.Render("statements run without BEGIN CODE")
}

func (m replModel) footer() string {
	return m.help.View(m.keys)
}

func (m replModel) varsPanel() string {
	vars := m.session.vars()
	if len(vars) == 0 {
		return stylePanel.Render(styleDim.Render("no variables"))
	}
	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		name, value, _ := strings.Cut(v, " = ")
		lines = append(lines, styleName.Render(name)+" = "+value)
	}
	return stylePanel.Render(strings.Join(lines, "\n"))
}

func commandsPanel() string {
	lines := make([]string, 0, len(replCommands))
	for _, c := range replCommands {
		lines = append(lines, fmt.Sprintf("%s %s", styleName.Render(fmt.Sprintf("%-7s %-3s", c.name, c.alias)), styleDim.Render(c.desc)))
	}
	return stylePanel.Render(strings.Join(lines, "\n"))
}

func (m replModel) View() string {
	if m.quitting {
		return styleDim.Render("bye\n")
	}
	if !m.ready {
		return "starting..."
	}

	sections := []string{m.header(), m.transcript.View()}
	if m.showVars {
		sections = append(sections, m.varsPanel())
	}
	if m.help.ShowAll {
		sections = append(sections, commandsPanel())
	}
	for _, line := range m.pending {
		sections = append(sections, stylePrompt.Render(continuationPrompt)+line)
	}
	sections = append(sections, m.input.View(), m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
