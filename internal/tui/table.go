package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kingrea/namelist-lattice/internal/history"
)

// PlanRow is one lattice point as shown by the plan command.
type PlanRow struct {
	Index  int
	Values []string
	Suffix string
	Case   string
}

// RenderPlan tabulates lattice points under their dimension labels.
func RenderPlan(title string, dimensions []string, rows []PlanRow) string {
	headers := []string{"#"}
	headers = append(headers, dimensions...)
	headers = append(headers, "suffix", "case")
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := []string{strconv.Itoa(row.Index)}
		for i := range dimensions {
			value := ""
			if i < len(row.Values) {
				value = row.Values[i]
			}
			line = append(line, value)
		}
		line = append(line, row.Suffix, row.Case)
		data = append(data, line)
	}
	summary := Muted(fmt.Sprintf("%d points", len(rows)))
	return lipgloss.JoinVertical(lipgloss.Left, Banner(title), renderTable(headers, data), summary)
}

// RenderHistory tabulates the points of a manifest with their states.
func RenderHistory(m history.Manifest) string {
	headers := []string{"#", "state"}
	headers = append(headers, m.Dimensions...)
	headers = append(headers, "case")
	data := make([][]string, 0, len(m.Points))
	for _, p := range m.Points {
		state := string(p.State)
		if p.Reused {
			state += " (existing)"
		}
		line := []string{strconv.Itoa(p.Index), state}
		for i := range m.Dimensions {
			value := ""
			if i < len(p.Values) {
				value = p.Values[i]
			}
			line = append(line, value)
		}
		line = append(line, p.Case)
		data = append(data, line)
	}
	head := Banner(fmt.Sprintf("RUN %s", m.RunID))
	meta := Muted(fmt.Sprintf("root %s · prefix %s · %s · updated %s",
		m.RootCase, m.Prefix, modeName(m.Fill), m.UpdatedAt.Format("2006-01-02 15:04:05")))
	sections := []string{head, meta, renderTable(headers, data)}
	var failures []string
	for _, p := range m.Points {
		if p.Error != "" {
			failures = append(failures, Error(fmt.Sprintf("point %d: %s", p.Index, p.Error)))
		}
	}
	if len(failures) > 0 {
		sections = append(sections, strings.Join(failures, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderTable(headers []string, rows [][]string) string {
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(styled...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	return t.Render()
}

func modeName(fill bool) string {
	if fill {
		return "fill"
	}
	return "zip"
}
