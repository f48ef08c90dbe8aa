package engine

import (
	"errors"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/derive"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/status"
)

var ErrGameAlreadyCompleted = errors.New("game already completed")
var ErrUnknownPlayer = errors.New("unknown player slot")
var ErrIllegalDelta = errors.New("illegal score delta")
var ErrUnsupportedCommand = errors.New("unsupported command")

type PlayerSlot string

const (
	Player1 PlayerSlot = "player1"
	Player2 PlayerSlot = "player2"
)

// State is the full live-scoring state of one game. Apply returns the next
// state and leaves the input untouched.
type State struct {
	GameID    string
	Player1ID string
	Player2ID string
	GameType  string
	Score     map[PlayerSlot]int
	Status    status.Status
	Winner    string
}

type CommandType string

const (
	CmdScoreDelta CommandType = "ScoreDelta"
	CmdEndGame    CommandType = "EndGame"
)

type Command struct {
	Type  CommandType
	Slot  PlayerSlot
	Delta int
}

type EventType string

const (
	EvtScoreChanged  EventType = "ScoreChanged"
	EvtGameCompleted EventType = "GameCompleted"
)

type Event struct {
	Type   EventType
	Slot   PlayerSlot
	Points int
	Winner string
}

// Score deltas the court UI offers: free throw, field goal, three pointer,
// and a one-point correction.
var legalDeltas = map[int]bool{1: true, 2: true, 3: true, -1: true}

func NewState(gameID, player1ID, player2ID, gameType string) State {
	return State{
		GameID:    gameID,
		Player1ID: player1ID,
		Player2ID: player2ID,
		GameType:  gameType,
		Score:     map[PlayerSlot]int{Player1: 0, Player2: 0},
		Status:    status.InProgress,
	}
}

// Apply runs one command against the state and returns the events it
// produced plus the next state. On error the input state comes back
// unchanged.
func Apply(s State, cmd Command) ([]Event, State, error) {
	if s.Status == status.Completed {
		return nil, s, ErrGameAlreadyCompleted
	}

	newState := s

	switch cmd.Type {
	case CmdScoreDelta:
		if cmd.Slot != Player1 && cmd.Slot != Player2 {
			return nil, s, ErrUnknownPlayer
		}
		if !legalDeltas[cmd.Delta] {
			return nil, s, ErrIllegalDelta
		}

		// Clamped at zero; a -1 correction on a scoreless player is a no-op.
		next := derive.ApplyDelta(s.Score[cmd.Slot], cmd.Delta)
		newState.Score = cloneScore(s.Score)
		newState.Score[cmd.Slot] = next

		events := []Event{
			{Type: EvtScoreChanged, Slot: cmd.Slot, Points: next},
		}
		return events, newState, nil

	case CmdEndGame:
		next, err := status.Step(status.KindGame, s.Status, status.Completed)
		if err != nil {
			return nil, s, err
		}
		winner := derive.Winner(s.Player1ID, s.Player2ID, s.Score[Player1], s.Score[Player2])
		newState.Status = next
		newState.Winner = winner

		events := []Event{
			{Type: EvtGameCompleted, Winner: winner},
		}
		return events, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

// Reduce replays events over an initial state.
func Reduce(initial State, events []Event) State {
	s := initial
	s.Score = cloneScore(initial.Score)
	for _, event := range events {
		switch event.Type {
		case EvtScoreChanged:
			s.Score[event.Slot] = event.Points
		case EvtGameCompleted:
			s.Status = status.Completed
			s.Winner = event.Winner
		}
	}
	return s
}

func cloneScore(in map[PlayerSlot]int) map[PlayerSlot]int {
	out := make(map[PlayerSlot]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
