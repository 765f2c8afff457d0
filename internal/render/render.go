// Package render draws innings snapshots and notices for a terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
)

// ScoreLine is the short team score, e.g. "42/3 (6.4 ov)".
func ScoreLine(s engine.Snapshot) string {
	return fmt.Sprintf("%d/%d (%s ov)", s.TotalRuns, s.Wickets, s.Overs)
}

// Board renders the full scoreboard panel.
func Board(s engine.Snapshot) (string, error) {
	data := pterm.TableData{{"", "Batter", "R", "B", "SR"}}
	for _, slot := range []engine.Slot{engine.SlotA, engine.SlotB} {
		b := s.Batters[slot]
		marker := ""
		if b.OnStrike {
			marker = "*"
		}
		data = append(data, []string{marker, b.Name, strconv.Itoa(b.Runs), strconv.Itoa(b.Balls), b.StrikeRate})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("render batters: %w", err)
	}

	var body strings.Builder
	body.WriteString(pterm.Bold.Sprint(ScoreLine(s)))
	if s.FreeHit {
		body.WriteString("  " + pterm.LightYellow("FREE HIT"))
	}
	if s.InningsOver {
		body.WriteString("  " + pterm.LightRed("INNINGS OVER"))
	}
	body.WriteString("\n\n")
	body.WriteString(table)
	if s.Status != "" {
		body.WriteString("\n\n" + pterm.Gray(s.Status))
	}

	title := pterm.LightCyan("|SCOREBOARD|")
	return pterm.DefaultBox.WithTitle(title).WithTitleTopCenter().WithLeftPadding(2).WithRightPadding(2).Sprint(body.String()), nil
}

// Notice colours an event by its tone.
func Notice(e engine.Event) string {
	switch e.Tone {
	case engine.ToneGood:
		return pterm.LightGreen(e.Text)
	case engine.ToneBad:
		return pterm.LightRed(e.Text)
	default:
		return pterm.LightCyan(e.Text)
	}
}
