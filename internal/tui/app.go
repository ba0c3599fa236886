// internal/tui/app.go
//
// This is the interactive status view for latticegen.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/namelist-lattice/internal/history"
)

// appState represents which "screen" we're on
type appState int

const (
	stateCaseList   appState = iota // List of every point in the run
	stateCaseDetail                 // Values and paths of the selected point
)

// App browses the latest run manifest.
type App struct {
	state    appState
	manifest history.Manifest
	journal  []string
	cases    list.Model
	width    int
	height   int
}

// caseItem implements list.Item interface for one lattice point
type caseItem struct {
	record history.PointRecord
}

func (i caseItem) Title() string {
	return fmt.Sprintf("%3d  %s", i.record.Index, filepath.Base(i.record.Case))
}

func (i caseItem) Description() string {
	desc := string(i.record.State)
	if i.record.Reused {
		desc += " · existing"
	}
	if i.record.Error != "" {
		desc += " · " + i.record.Error
	}
	return desc
}

func (i caseItem) FilterValue() string { return i.record.Suffix }

// NewApp creates the status view for a manifest and recent journal lines.
func NewApp(manifest history.Manifest, journal []string) *App {
	items := make([]list.Item, 0, len(manifest.Points))
	for _, p := range manifest.Points {
		items = append(items, caseItem{record: p})
	}
	cases := list.New(items, list.NewDefaultDelegate(), 0, 0)
	cases.Title = "⬡ LATTICE · " + manifest.Prefix
	cases.SetShowStatusBar(false)
	cases.SetFilteringEnabled(true)
	return &App{
		state:    stateCaseList,
		manifest: manifest,
		journal:  journal,
		cases:    cases,
	}
}

// Init is called when the program starts
func (a *App) Init() tea.Cmd {
	return nil
}

// Update handles all incoming messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.cases.SetSize(max(20, msg.Width-4), max(5, msg.Height-len(a.journal)-8))
		return a, nil

	case tea.KeyMsg:
		if a.cases.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateCaseList {
				return a, tea.Quit
			}
			a.state = stateCaseList
			return a, nil
		case "esc":
			if a.state != stateCaseList {
				a.state = stateCaseList
				return a, nil
			}
		case "enter":
			if a.state == stateCaseList {
				if _, ok := a.cases.SelectedItem().(caseItem); ok {
					a.state = stateCaseDetail
				}
				return a, nil
			}
		}
	}

	if a.state == stateCaseList {
		var cmd tea.Cmd
		a.cases, cmd = a.cases.Update(msg)
		return a, cmd
	}
	return a, nil
}

// View renders the current screen
func (a *App) View() string {
	var main string
	switch a.state {
	case stateCaseDetail:
		main = a.renderDetail()
	default:
		main = a.cases.View()
	}
	sections := []string{main}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1).
		Render(a.footerHint())
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) footerHint() string {
	if a.state == stateCaseDetail {
		return "esc back · q back · ctrl+c quit"
	}
	return "enter details · / filter · q quit"
}

func (a *App) renderDetail() string {
	item, ok := a.cases.SelectedItem().(caseItem)
	if !ok {
		return ""
	}
	rec := item.record
	lines := []string{
		headerStyle.Render(fmt.Sprintf("POINT %d · %s", rec.Index, rec.State)),
		"suffix  " + rec.Suffix,
		"case    " + rec.Case,
	}
	if rec.Output != "" {
		lines = append(lines, "output  "+rec.Output)
	}
	for i, label := range a.manifest.Dimensions {
		if i < len(rec.Values) {
			lines = append(lines, fmt.Sprintf("%-7s %s", label, rec.Values[i]))
		}
	}
	if rec.Error != "" {
		lines = append(lines, errorStyle.Render(rec.Error))
	}
	return boxStyle.Width(max(20, a.width-4)).Render(strings.Join(lines, "\n"))
}

func (a *App) renderLogPanel() string {
	if len(a.journal) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent).
		Render("LOG · journal.log")
	body := lipgloss.NewStyle().
		Foreground(colorBody).
		Render(strings.Join(a.journal, "\n"))
	return boxStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}
