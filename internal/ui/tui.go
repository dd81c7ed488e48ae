package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msaeedsaeedi/pagecycler/internal/domain"
)

var (
	colorActiveBlue = lipgloss.Color("39")
	colorDimGray    = lipgloss.Color("240")
	colorGreen      = lipgloss.Color("42")
	colorRed        = lipgloss.Color("196")
	colorYellow     = lipgloss.Color("220")
	colorWhite      = lipgloss.Color("255")
	colorLightGray  = lipgloss.Color("250")

	styleBoldWhite = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	styleDim       = lipgloss.NewStyle().Foreground(colorDimGray)
	styleActive    = lipgloss.NewStyle().Foreground(colorActiveBlue).Bold(true)
	styleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailure   = lipgloss.NewStyle().Foreground(colorRed)
	stylePending   = lipgloss.NewStyle().Foreground(colorDimGray)
	styleRunning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleHelpKey  = lipgloss.NewStyle().Foreground(colorLightGray)
	styleHelpText = lipgloss.NewStyle().Foreground(colorDimGray)

	styleSidebar = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	styleMain    = lipgloss.NewStyle().PaddingLeft(4)
	styleFooter  = lipgloss.NewStyle().PaddingTop(1).PaddingLeft(1).PaddingBottom(1)
	styleScreen  = lipgloss.NewStyle().Margin(1, 2)
)

type phaseStatus string

const (
	statusPending phaseStatus = "pending"
	statusRunning phaseStatus = "running"
	statusDone    phaseStatus = "done"
	statusFailed  phaseStatus = "failed"
)

type TUIFormatter struct {
	model   *Model
	program *tea.Program
	ready   chan struct{}
	once    sync.Once
}

type startMsg struct{ phase domain.Phase }
type completeMsg struct {
	phase  domain.Phase
	result domain.CommandResult
}
type finishMsg struct{ report *domain.RunReport }

type streamMsg struct {
	text   string
	source string
	isErr  bool
}

type tuiWriter struct {
	formatter *TUIFormatter
	source    string
	isErr     bool
}

type phaseState struct {
	phase     domain.Phase
	status    phaseStatus
	exitCode  int
	duration  time.Duration
	startedAt time.Time
}


type Model struct {
	cfg          *domain.RunConfig
	phases       []phaseState
	spinner      spinner.Model
	logs         []string
	maxLines     int
	scrollOffset int
	autoScroll   bool
	report       *domain.RunReport
	width        int
	height       int
	mu           sync.Mutex
}

func NewModel(cfg *domain.RunConfig) *Model {
	return &Model{
		cfg: cfg,
		phases: []phaseState{
			{phase: domain.PhaseInstrument, status: statusPending},
			{phase: domain.PhasePull, status: statusPending},
		},
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleRunning)),
		maxLines:   10000,
		autoScroll: true,
	}
}

func NewTUIFormatter(cfg *domain.RunConfig) *TUIFormatter {
	return &TUIFormatter{model: NewModel(cfg), ready: make(chan struct{})}
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		m.mu.Lock()
		if p := m.find(msg.phase); p != nil {
			p.status = statusRunning
			p.startedAt = time.Now()
		}
		m.mu.Unlock()

	case completeMsg:
		m.mu.Lock()
		if p := m.find(msg.phase); p != nil {
			p.status = statusDone
			if msg.result.Error != nil {
				p.status = statusFailed
			}
			p.exitCode = msg.result.ExitCode
			p.duration = msg.result.Duration
		}
		m.mu.Unlock()

	case finishMsg:
		m.mu.Lock()
		m.report = msg.report
		m.mu.Unlock()
		return m, nil

	case streamMsg:
		m.appendLog(msg)
		return m, nil

	case spinner.TickMsg:
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.report != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		m.mu.Lock()
		defer m.mu.Unlock()
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "home":
			m.scrollOffset = 0
			m.autoScroll = false
		case "end":
			m.autoScroll = true
		case "pgup", "up", "k":
			m.scrollOffset = max(0, m.scrollOffset-10)
			m.autoScroll = false
		case "pgdown", "down", "j":
			m.scrollOffset += 10
			m.autoScroll = false
		}

	case tea.WindowSizeMsg:
		m.mu.Lock()
		m.width = msg.Width
		m.height = msg.Height
		m.mu.Unlock()
	}

	return m, nil
}

func (m *Model) find(phase domain.Phase) *phaseState {
	for i := range m.phases {
		if m.phases[i].phase == phase {
			return &m.phases[i]
		}
	}
	return nil
}

func (m *Model) View() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.width == 0 {
		return "Initializing..."
	}

	availWidth := max(20, m.width-4)
	availHeight := max(10, m.height-2)
	sidebarW := max(30, availWidth/4)
	mainW := availWidth - sidebarW - 1
	contentH := max(10, availHeight-3)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(sidebarW, contentH),
		m.renderMainPanel(mainW, contentH),
	)
	screen := lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter(availWidth))

	return styleScreen.Render(screen)
}

func (m *Model) renderSidebar(width, height int) string {
	var sb strings.Builder

	sb.WriteString(styleBoldWhite.Render("PHASES"))
	sb.WriteString("\n\n")

	for _, p := range m.phases {
		sb.WriteString(m.renderPhaseLine(p))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderVerdict())

	return styleSidebar.Width(width).MaxWidth(width).Height(height).Render(sb.String())
}

func (m *Model) renderPhaseLine(p phaseState) string {
	label := fmt.Sprintf("%-10s", p.phase)
	switch p.status {
	case statusRunning:
		return styleActive.Render("┃ "+label) + " " + m.spinner.View()
	case statusDone:
		return styleSuccess.Render(fmt.Sprintf("  %s ✓ %s", label, p.duration.Round(time.Millisecond)))
	case statusFailed:
		return styleFailure.Render(fmt.Sprintf("  %s ✗ exit %d", label, p.exitCode))
	default:
		return stylePending.Render("  " + label + " -")
	}
}

func (m *Model) renderVerdict() string {
	switch {
	case m.report == nil:
		return styleRunning.Render("Running...")
	case m.report.Verdict == domain.VerdictPass && !m.report.Pulled:
		return styleRunning.Render("PASS (result file missing)")
	case m.report.Verdict == domain.VerdictPass:
		return styleSuccess.Render("PASS")
	default:
		return styleFailure.Render("FAIL")
	}
}

func (m *Model) renderMainPanel(width, height int) string {
	var main strings.Builder

	main.WriteString(styleBoldWhite.Render("PAGE CYCLER"))
	main.WriteString("\n\n")

	main.WriteString(styleBoldWhite.Render("Target"))
	fmt.Fprintf(&main, "\n  > %s\n\n", m.cfg.Target)

	main.WriteString(styleBoldWhite.Render("Results"))
	fmt.Fprintf(&main, "\n  %s\n\n", m.cfg.ResultsDir)

	if m.report != nil && m.report.Err != nil {
		main.WriteString(styleFailure.Render(m.report.Err.Error()))
		main.WriteString("\n\n")
	}

	m.renderLogsSection(&main, height)

	return styleMain.Width(width).Height(height).Render(main.String())
}

func (m *Model) renderLogsSection(w *strings.Builder, contentHeight int) {
	w.WriteString(styleBoldWhite.Render("OUTPUT LOGS"))
	w.WriteString("\n")

	logAreaHeight := max(5, contentHeight-12)
	total := len(m.logs)

	if m.autoScroll && total > logAreaHeight {
		m.scrollOffset = total - logAreaHeight
	}

	start := max(0, min(m.scrollOffset, total-logAreaHeight))
	end := min(total, start+logAreaHeight)

	rendered := 0
	for i := start; i < end; i++ {
		w.WriteString(m.logs[i] + "\n")
		rendered++
	}
	for rendered < logAreaHeight {
		w.WriteString("\n")
		rendered++
	}

	if end < total {
		w.WriteString(styleDim.Render("... (scroll down for more) ..."))
	} else {
		w.WriteString(" ")
	}
}

func (m *Model) renderFooter(width int) string {
	state := "Active"
	if m.report != nil {
		state = "Complete"
	}
	left := styleHelpText.Render(state)

	help := []string{
		styleHelpKey.Render("pgup/pgdn") + styleHelpText.Render(" scroll"),
		styleHelpKey.Render("end") + styleHelpText.Render(" follow"),
		styleHelpKey.Render("q") + styleHelpText.Render(" quit"),
	}
	right := strings.Join(help, "   ")

	spacer := strings.Repeat(" ", max(2, width-lipgloss.Width(left)-lipgloss.Width(right)-4))

	return styleFooter.Width(width).Render(left + spacer + right)
}

func (m *Model) appendLog(msg streamMsg) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := styleDim.Render("[" + time.Now().Format("15:04:05") + "] ")
	prefix := ""
	if msg.source != "" {
		prefix = styleDim.Render(msg.source + " ")
	}

	for _, line := range strings.Split(strings.TrimRight(msg.text, "\n"), "\n") {
		if line == "" {
			continue
		}
		styled := line
		if msg.isErr {
			styled = styleFailure.Render(line)
		}
		m.logs = append(m.logs, ts+prefix+styled)
	}

	if len(m.logs) > m.maxLines {
		m.logs = m.logs[len(m.logs)-m.maxLines:]
	}
}

func (f *TUIFormatter) Run(ctx context.Context) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if ctx != nil {
		opts = append(opts, tea.WithContext(ctx))
	}

	f.program = tea.NewProgram(f.model, opts...)
	f.once.Do(func() { close(f.ready) })

	_, err := f.program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func (f *TUIFormatter) WaitReady(ctx context.Context) error {
	select {
	case <-f.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *TUIFormatter) send(msg tea.Msg) {
	if f.program != nil {
		f.program.Send(msg)
	}
}

func (f *TUIFormatter) OnStart(phase domain.Phase) {
	f.send(startMsg{phase: phase})
}

func (f *TUIFormatter) OnComplete(phase domain.Phase, result domain.CommandResult) {
	f.send(completeMsg{phase: phase, result: result})
}

func (f *TUIFormatter) OnFinish(report *domain.RunReport) {
	f.send(finishMsg{report: report})
}

// GetOutputWriters streams bridge output into the log pane.
func (f *TUIFormatter) GetOutputWriters() (stdout, stderr io.Writer) {
	return &tuiWriter{formatter: f, source: "adb"},
		&tuiWriter{formatter: f, source: "adb", isErr: true}
}

// LogWriter returns a writer feeding log records into the log pane.
func (f *TUIFormatter) LogWriter() io.Writer {
	return &tuiWriter{formatter: f}
}

func (w *tuiWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		w.formatter.send(streamMsg{text: string(p), source: w.source, isErr: w.isErr})
	}
	return len(p), nil
}
