package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaeedsaeedi/pagecycler/internal/domain"
)

func TestModelPhaseTransitions(t *testing.T) {
	m := NewModel(testConfig())

	m.Update(startMsg{phase: domain.PhaseInstrument})
	assert.Equal(t, statusRunning, m.find(domain.PhaseInstrument).status)
	assert.Equal(t, statusPending, m.find(domain.PhasePull).status)

	m.Update(completeMsg{phase: domain.PhaseInstrument, result: domain.CommandResult{Launched: true}})
	assert.Equal(t, statusDone, m.find(domain.PhaseInstrument).status)

	m.Update(startMsg{phase: domain.PhasePull})
	m.Update(completeMsg{phase: domain.PhasePull, result: domain.CommandResult{ExitCode: 1, Error: assert.AnError}})
	pull := m.find(domain.PhasePull)
	assert.Equal(t, statusFailed, pull.status)
	assert.Equal(t, 1, pull.exitCode)

	report := &domain.RunReport{Verdict: domain.VerdictPass}
	m.Update(finishMsg{report: report})
	assert.Same(t, report, m.report)
	assert.Contains(t, m.renderVerdict(), "result file missing")
}

func TestModelLogs(t *testing.T) {
	m := NewModel(testConfig())
	m.maxLines = 3

	m.Update(streamMsg{text: "one\n\ntwo\n", source: "adb"})
	m.Update(streamMsg{text: "three\nfour\n", isErr: true})

	require.Len(t, m.logs, 3)
	assert.Contains(t, m.logs[0], "two")
	assert.Contains(t, m.logs[2], "four")
}

func TestModelQuit(t *testing.T) {
	m := NewModel(testConfig())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelView(t *testing.T) {
	m := NewModel(testConfig())
	assert.Equal(t, "Initializing...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(streamMsg{text: "INSTRUMENTATION_CODE: -1\n"})
	view := m.View()
	assert.Contains(t, view, "PHASES")
	assert.Contains(t, view, "INSTRUMENTATION_CODE: -1")
}

func TestTUIFormatterWithoutProgram(t *testing.T) {
	f := NewTUIFormatter(testConfig())

	// Before the program starts, events are dropped rather than blocking.
	f.OnStart(domain.PhaseInstrument)
	n, err := f.LogWriter().Write([]byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
