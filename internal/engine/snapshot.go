package engine

import (
	"fmt"
	"math"
	"strconv"
)

// BatterView is one slot as a renderer sees it.
type BatterView struct {
	Name       string `json:"name"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	StrikeRate string `json:"strike_rate"`
	OnStrike   bool   `json:"on_strike"`
}

// Snapshot is the read-only view of an innings handed to renderers.
type Snapshot struct {
	TotalRuns         int                 `json:"total_runs"`
	Wickets           int                 `json:"wickets"`
	Overs             string              `json:"overs"`
	Batters           map[Slot]BatterView `json:"batters"`
	Striker           Slot                `json:"striker"`
	FreeHit           bool                `json:"free_hit"`
	InningsOver       bool                `json:"innings_over"`
	AcceptsDeliveries bool                `json:"accepts_deliveries"`
	Status            string              `json:"status"`
}

func (s State) Snapshot() Snapshot {
	batters := make(map[Slot]BatterView, 2)
	for _, slot := range []Slot{SlotA, SlotB} {
		b := s.Batters[slot]
		batters[slot] = BatterView{
			Name:       b.Name,
			Runs:       b.Runs,
			Balls:      b.Balls,
			StrikeRate: StrikeRate(b.Runs, b.Balls),
			OnStrike:   slot == s.Striker,
		}
	}
	return Snapshot{
		TotalRuns:         s.TotalRuns,
		Wickets:           s.Wickets,
		Overs:             FormatOvers(s.Overs, s.Balls),
		Batters:           batters,
		Striker:           s.Striker,
		FreeHit:           s.FreeHit,
		InningsOver:       s.InningsOver,
		AcceptsDeliveries: !s.InningsOver,
		Status:            s.Status,
	}
}

// StrikeRate is runs per hundred balls rounded to one decimal place.
func StrikeRate(runs, balls int) string {
	if balls <= 0 {
		return "0.0"
	}
	sr := math.Floor(float64(runs)/float64(balls)*1000+0.5) / 10
	return strconv.FormatFloat(sr, 'f', 1, 64)
}

func FormatOvers(overs, balls int) string {
	return fmt.Sprintf("%d.%d", overs, balls)
}
