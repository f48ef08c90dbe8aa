package leaderboard

import (
	"sort"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/derive"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
)

const (
	winPoints  = 10
	lossPoints = 2
)

type Row struct {
	Rank     int     `json:"rank"`
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Points   int     `json:"points"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	WinRate  float64 `json:"win_rate"`
}

// Compute aggregates completed games into ranked rows. Ties on points
// break on win rate, then username, so the order is deterministic.
func Compute(users []models.User, games []models.Game) []Row {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	type tally struct{ wins, losses int }
	tallies := make(map[string]*tally)
	record := func(id string) *tally {
		if t, ok := tallies[id]; ok {
			return t
		}
		t := &tally{}
		tallies[id] = t
		return t
	}

	for _, g := range games {
		if g.Winner == "" {
			continue // ties count for neither column
		}
		record(g.Winner).wins++
		for _, loser := range []string{g.Player1ID, g.Player2ID} {
			if loser != "" && loser != g.Winner {
				record(loser).losses++
			}
		}
	}

	rows := make([]Row, 0, len(tallies))
	for id, t := range tallies {
		rows = append(rows, Row{
			UserID:   id,
			Username: names[id],
			Points:   t.wins*winPoints + t.losses*lossPoints,
			Wins:     t.wins,
			Losses:   t.losses,
			WinRate:  derive.WinRate(t.wins, t.losses),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].WinRate != rows[j].WinRate {
			return rows[i].WinRate > rows[j].WinRate
		}
		return rows[i].Username < rows[j].Username
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
