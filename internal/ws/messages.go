package ws

import (
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/engine"
)

type ClientMessage struct {
	Type   string `json:"type"`             // "Score" | "EndGame"
	Player string `json:"player,omitempty"` // "player1" | "player2"
	Points int    `json:"points,omitempty"` // +1 | +2 | +3 | -1
}

type ServerMessage struct {
	Type    string        `json:"type"` // "StateSnapshot" | "Error"
	Version int           `json:"version,omitempty"`
	State   *GameSnapshot `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// GameSnapshot is the wire view of an engine state.
type GameSnapshot struct {
	GameID    string         `json:"game_id"`
	Player1ID string         `json:"player1_id"`
	Player2ID string         `json:"player2_id,omitempty"`
	GameType  string         `json:"game_type"`
	Score     map[string]int `json:"score"`
	Status    string         `json:"status"`
	Winner    string         `json:"winner,omitempty"`
}

func snapshotOf(s engine.State) *GameSnapshot {
	score := make(map[string]int, len(s.Score))
	for slot, pts := range s.Score {
		score[string(slot)] = pts
	}
	return &GameSnapshot{
		GameID:    s.GameID,
		Player1ID: s.Player1ID,
		Player2ID: s.Player2ID,
		GameType:  s.GameType,
		Score:     score,
		Status:    string(s.Status),
		Winner:    s.Winner,
	}
}

func toEngineCommand(m ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case "Score":
		slot, ok := parseSlot(m.Player)
		if !ok {
			return engine.Command{}, false
		}
		return engine.Command{Type: engine.CmdScoreDelta, Slot: slot, Delta: m.Points}, true
	case "EndGame":
		return engine.Command{Type: engine.CmdEndGame}, true
	default:
		return engine.Command{}, false
	}
}

func parseSlot(player string) (engine.PlayerSlot, bool) {
	switch player {
	case "player1":
		return engine.Player1, true
	case "player2":
		return engine.Player2, true
	default:
		return "", false
	}
}
