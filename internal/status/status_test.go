package status

import (
	"errors"
	"testing"
)

func TestStepLegalTransitions(t *testing.T) {
	tests := []struct {
		kind     Kind
		from, to Status
	}{
		{KindBooking, Pending, Confirmed},
		{KindBooking, Pending, Cancelled},
		{KindBooking, Confirmed, Completed},
		{KindBooking, Confirmed, Cancelled},
		{KindChallenge, Open, Accepted},
		{KindChallenge, Open, Cancelled},
		{KindChallenge, Accepted, InProgress},
		{KindChallenge, InProgress, Completed},
		{KindTournament, Upcoming, Active},
		{KindTournament, Active, Completed},
		{KindGame, Scheduled, InProgress},
		{KindGame, InProgress, Completed},
	}
	for _, tt := range tests {
		got, err := Step(tt.kind, tt.from, tt.to)
		if err != nil {
			t.Errorf("Step(%s, %s -> %s) unexpected error %v", tt.kind, tt.from, tt.to, err)
			continue
		}
		if got != tt.to {
			t.Errorf("Step(%s, %s -> %s) = %s", tt.kind, tt.from, tt.to, got)
		}
	}
}

func TestStepIllegalTransitions(t *testing.T) {
	tests := []struct {
		kind     Kind
		from, to Status
	}{
		{KindBooking, Completed, Pending},
		{KindBooking, Cancelled, Confirmed},
		{KindBooking, Pending, Completed},
		{KindChallenge, Completed, Open},
		{KindChallenge, Cancelled, Accepted},
		{KindChallenge, InProgress, Cancelled},
		{KindTournament, Completed, Active},
		{KindGame, Completed, InProgress},
		{KindGame, Scheduled, Completed},
	}
	for _, tt := range tests {
		got, err := Step(tt.kind, tt.from, tt.to)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Errorf("Step(%s, %s -> %s) err = %v, want ErrIllegalTransition", tt.kind, tt.from, tt.to, err)
		}
		if got != tt.from {
			t.Errorf("Step(%s, %s -> %s) moved status to %s on error", tt.kind, tt.from, tt.to, got)
		}
	}
}

func TestStepUnknownKind(t *testing.T) {
	if _, err := Step(Kind("league"), Pending, Confirmed); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestInitial(t *testing.T) {
	tests := map[Kind]Status{
		KindBooking:    Pending,
		KindChallenge:  Open,
		KindTournament: Upcoming,
		KindGame:       Scheduled,
	}
	for k, want := range tests {
		if got := Initial(k); got != want {
			t.Errorf("Initial(%s) = %s, want %s", k, got, want)
		}
	}
}

func TestTerminal(t *testing.T) {
	if !Terminal(KindBooking, Completed) {
		t.Error("completed booking should be terminal")
	}
	if !Terminal(KindBooking, Cancelled) {
		t.Error("cancelled booking should be terminal")
	}
	if Terminal(KindBooking, Pending) {
		t.Error("pending booking should not be terminal")
	}
	if Terminal(KindChallenge, Accepted) {
		t.Error("accepted challenge should not be terminal")
	}
}

func TestUnresolved(t *testing.T) {
	if !Unresolved(KindChallenge, Open) {
		t.Error("open challenge should be cancellable")
	}
	if Unresolved(KindChallenge, InProgress) {
		t.Error("in-progress challenge should not be cancellable")
	}
	if Unresolved(KindGame, InProgress) {
		t.Error("in-progress game should not be cancellable")
	}
}

type item struct {
	id string
	st Status
}

func TestByStatusPartition(t *testing.T) {
	items := []item{
		{"a", Pending}, {"b", Confirmed}, {"c", Pending},
		{"d", Cancelled}, {"e", Confirmed}, {"f", Pending},
	}
	get := func(it item) Status { return it.st }

	pending := ByStatus(items, get, Pending)
	if len(pending) != 3 || pending[0].id != "a" || pending[1].id != "c" || pending[2].id != "f" {
		t.Errorf("ByStatus pending = %v, want a,c,f in order", pending)
	}

	// Every item lands in exactly one bucket and none are invented.
	total := 0
	for _, st := range []Status{Pending, Confirmed, Cancelled} {
		total += len(ByStatus(items, get, st))
	}
	if total != len(items) {
		t.Errorf("buckets hold %d items, want %d", total, len(items))
	}

	if got := ByStatus(items, get, Completed); got != nil {
		t.Errorf("ByStatus with no matches = %v, want nil", got)
	}
}
