package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/comixed/comixed-client/pkg/alert"
)

var (
	colorTeal  = lipgloss.Color("#20B9B4")
	colorError = lipgloss.Color("#E74C3C")
	colorMuted = lipgloss.Color("#2C4A54")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	infoStyle   = lipgloss.NewStyle().Foreground(colorTeal)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorError)
)

// alertSink renders alerts in color, one per line.
func alertSink(w io.Writer) alert.Sink {
	var mu sync.Mutex
	return func(a alert.Alert) {
		style := infoStyle
		if a.Level == alert.LevelError {
			style = errorStyle
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, style.Render(a.Message))
	}
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("(none)"))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = itoa(id)
	}
	return strings.Join(parts, ", ")
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", a, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
