package engine

import (
	"errors"
	"testing"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/status"
)

func TestScoreDeltaClampsAtZero(t *testing.T) {
	cases := []struct {
		name      string
		start     int
		delta     int
		wantScore int
	}{
		{name: "minus one on zero stays zero", start: 0, delta: -1, wantScore: 0},
		{name: "minus one on two is one", start: 2, delta: -1, wantScore: 1},
		{name: "three pointer", start: 5, delta: 3, wantScore: 8},
		{name: "free throw", start: 0, delta: 1, wantScore: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState("g1", "u1", "u2", "1v1")
			s.Score[Player1] = tc.start

			events, next, err := Apply(s, Command{Type: CmdScoreDelta, Slot: Player1, Delta: tc.delta})
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if next.Score[Player1] != tc.wantScore {
				t.Fatalf("score: got %d, want %d", next.Score[Player1], tc.wantScore)
			}
			if !ContainsEvent(events, EvtScoreChanged) {
				t.Fatalf("expected ScoreChanged event, got %+v", events)
			}
			// input state untouched
			if s.Score[Player1] != tc.start {
				t.Fatalf("input state mutated: %d", s.Score[Player1])
			}
		})
	}
}

func TestIllegalDeltaIsRejected(t *testing.T) {
	s := NewState("g1", "u1", "u2", "1v1")
	for _, delta := range []int{0, 4, -2, 100} {
		_, _, err := Apply(s, Command{Type: CmdScoreDelta, Slot: Player1, Delta: delta})
		if !errors.Is(err, ErrIllegalDelta) {
			t.Fatalf("delta %d: got %v, want ErrIllegalDelta", delta, err)
		}
	}
}

func TestUnknownSlotIsRejected(t *testing.T) {
	s := NewState("g1", "u1", "u2", "1v1")
	_, _, err := Apply(s, Command{Type: CmdScoreDelta, Slot: "player3", Delta: 2})
	if !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("got %v, want ErrUnknownPlayer", err)
	}
}

func TestEndGameWinner(t *testing.T) {
	cases := []struct {
		name       string
		s1, s2     int
		wantWinner string
	}{
		{name: "player1 leads", s1: 21, s2: 18, wantWinner: "u1"},
		{name: "player2 leads", s1: 0, s2: 5, wantWinner: "u2"},
		{name: "tie has no winner", s1: 10, s2: 10, wantWinner: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState("g1", "u1", "u2", "1v1")
			s.Score[Player1] = tc.s1
			s.Score[Player2] = tc.s2

			events, next, err := Apply(s, Command{Type: CmdEndGame})
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if next.Status != status.Completed {
				t.Fatalf("status: got %s, want completed", next.Status)
			}
			if next.Winner != tc.wantWinner {
				t.Fatalf("winner: got %q, want %q", next.Winner, tc.wantWinner)
			}
			if !ContainsEvent(events, EvtGameCompleted) {
				t.Fatalf("expected GameCompleted event, got %+v", events)
			}
		})
	}
}

func TestCompletedGameRejectsCommands(t *testing.T) {
	s := NewState("g1", "u1", "u2", "1v1")
	_, done, err := Apply(s, Command{Type: CmdEndGame})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	for _, cmd := range []Command{
		{Type: CmdScoreDelta, Slot: Player1, Delta: 2},
		{Type: CmdEndGame},
	} {
		_, _, err := Apply(done, cmd)
		if !errors.Is(err, ErrGameAlreadyCompleted) {
			t.Fatalf("%s: got %v, want ErrGameAlreadyCompleted", cmd.Type, err)
		}
	}
}

func TestScoreNeverNegativeUnderAnySequence(t *testing.T) {
	s := NewState("g1", "u1", "u2", "1v1")
	deltas := []int{-1, 1, -1, -1, 3, -1, -1, -1, -1, 2, -1}
	for _, d := range deltas {
		var err error
		_, s, err = Apply(s, Command{Type: CmdScoreDelta, Slot: Player2, Delta: d})
		if err != nil {
			t.Fatalf("delta %d: %v", d, err)
		}
		if s.Score[Player2] < 0 {
			t.Fatalf("score went negative: %d", s.Score[Player2])
		}
	}
}

func TestReduceReplaysToSameState(t *testing.T) {
	init := NewState("g1", "u1", "u2", "1v1")

	var all []Event
	s := init
	for _, cmd := range []Command{
		{Type: CmdScoreDelta, Slot: Player1, Delta: 2},
		{Type: CmdScoreDelta, Slot: Player2, Delta: 3},
		{Type: CmdScoreDelta, Slot: Player1, Delta: 1},
		{Type: CmdEndGame},
	} {
		events, next, err := Apply(s, cmd)
		if err != nil {
			t.Fatalf("apply %s: %v", cmd.Type, err)
		}
		all = append(all, events...)
		s = next
	}

	replayed := Reduce(init, all)
	if replayed.Score[Player1] != s.Score[Player1] || replayed.Score[Player2] != s.Score[Player2] {
		t.Fatalf("replayed score %+v != applied score %+v", replayed.Score, s.Score)
	}
	if replayed.Status != s.Status || replayed.Winner != s.Winner {
		t.Fatalf("replayed %s/%s != applied %s/%s", replayed.Status, replayed.Winner, s.Status, s.Winner)
	}
}
