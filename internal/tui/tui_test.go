package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/namelist-lattice/internal/history"
)

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestConfirmRequiresPhrase(t *testing.T) {
	var m tea.Model = NewConfirmModel([]string{"/scratch/clones"})
	assert.Contains(t, m.View(), "/scratch/clones")

	m = typeText(m, ConfirmPhrase)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.(ConfirmModel).Confirmed())
}

func TestConfirmRejectsOtherInput(t *testing.T) {
	var m tea.Model = NewConfirmModel([]string{"/scratch/clones"})
	m = typeText(m, "yes")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.(ConfirmModel).Confirmed())
	assert.Contains(t, m.View(), "declined")
}

func TestConfirmEscDeclines(t *testing.T) {
	var m tea.Model = NewConfirmModel(nil)
	m = typeText(m, ConfirmPhrase)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.False(t, m.(ConfirmModel).Confirmed())
}

func sampleManifest() history.Manifest {
	m := history.NewManifest("/cases/F2010", "F2010", true)
	m.Dimensions = []string{"nu", "grp"}
	m.Record(history.PointRecord{Index: 0, Suffix: "nu_1__grp_1_1", Case: "/clones/F2010__nu_1__grp_1_1", Values: []string{"1", "1,1"}, State: history.StateRegistered})
	m.Record(history.PointRecord{Index: 1, Suffix: "nu_2__grp_1_1", Case: "/clones/F2010__nu_2__grp_1_1", Values: []string{"2", "1,1"}, State: history.StateFailed, Error: "xmlchange failed"})
	m.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return m
}

func TestRenderPlan(t *testing.T) {
	out := RenderPlan("PLAN", []string{"nu", "dt"}, []PlanRow{
		{Index: 0, Values: []string{"1e15", "1800"}, Suffix: "nu_1e15__dt_1800", Case: "/c/x"},
		{Index: 1, Values: []string{"2e15"}, Suffix: "nu_2e15", Case: "/c/y"},
	})
	for _, want := range []string{"PLAN", "nu", "dt", "1e15", "1800", "nu_2e15", "/c/y", "2 points"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderHistory(t *testing.T) {
	out := RenderHistory(sampleManifest())
	for _, want := range []string{"F2010", "REGISTERED", "FAILED", "grp", "xmlchange failed", "2026-01-02 03:04:05"} {
		assert.Contains(t, out, want)
	}
}

func TestAppShowsDetailAndReturns(t *testing.T) {
	app := NewApp(sampleManifest(), []string{"INFO run=abc point 0 -> REGISTERED"})
	var m tea.Model = app
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, m.View(), "journal.log")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateCaseDetail, app.state)
	assert.Contains(t, m.View(), "/clones/F2010__nu_1__grp_1_1")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateCaseList, app.state)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
}
