package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gapbird/internal/storage"
)

// leaderboardSize is how many runs the panel lists.
const leaderboardSize = 10

var leaderboardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFD700")).
	MarginBottom(1)

// leaderboard renders the ledger's top runs as a table.
type leaderboard struct {
	table table.Model
	empty bool
}

func newLeaderboard(width, height int) leaderboard {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 8},
		{Title: "Time", Width: 8},
	}

	// Give spare width to the player column
	if extra := width - 4 - 6 - 14 - 8 - 8 - 8; extra > 0 {
		columns[1].Width += min(extra, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(max(min(height-4, leaderboardSize+1), 2)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return leaderboard{table: t, empty: true}
}

// load refreshes the rows from store.
func (l *leaderboard) load(store *storage.Store) error {
	runs, err := store.TopRuns(leaderboardSize)
	if err != nil {
		return err
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Player,
			fmt.Sprintf("%d", r.Score),
			r.CreatedAt.Format("15:04:05"),
		}
	}
	l.table.SetRows(rows)
	l.empty = len(runs) == 0
	return nil
}

func (l leaderboard) view(title string) string {
	body := l.table.View()
	if l.empty {
		body = footerStyle.Render("No finished runs yet.")
	}
	return leaderboardTitleStyle.Render(title) + "\n" + body
}
