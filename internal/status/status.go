package status

import "errors"

var ErrIllegalTransition = errors.New("illegal status transition")
var ErrUnknownKind = errors.New("unknown entity kind")

type Status string

const (
	Draft      Status = "draft"
	Pending    Status = "pending"
	Confirmed  Status = "confirmed"
	Completed  Status = "completed"
	Cancelled  Status = "cancelled"
	Open       Status = "open"
	Accepted   Status = "accepted"
	InProgress Status = "in_progress"
	Upcoming   Status = "upcoming"
	Active     Status = "active"
	Scheduled  Status = "scheduled"
)

// Kind selects which transition table applies. Bookings, challenges,
// tournaments and games each walk a different lifecycle but share the
// same machinery.
type Kind string

const (
	KindBooking    Kind = "booking"
	KindChallenge  Kind = "challenge"
	KindTournament Kind = "tournament"
	KindGame       Kind = "game"
)

var transitions = map[Kind]map[Status][]Status{
	KindBooking: {
		Draft:     {Pending},
		Pending:   {Confirmed, Cancelled},
		Confirmed: {Completed, Cancelled},
	},
	KindChallenge: {
		Open:       {Accepted, Cancelled},
		Accepted:   {InProgress, Cancelled},
		InProgress: {Completed},
	},
	KindTournament: {
		Upcoming: {Active, Cancelled},
		Active:   {Completed},
	},
	KindGame: {
		Scheduled:  {InProgress, Cancelled},
		InProgress: {Completed},
	},
}

var initial = map[Kind]Status{
	KindBooking:    Pending,
	KindChallenge:  Open,
	KindTournament: Upcoming,
	KindGame:       Scheduled,
}

// Initial is the status a freshly created entity of the given kind carries.
func Initial(k Kind) Status { return initial[k] }

func Can(k Kind, from, to Status) bool {
	table, ok := transitions[k]
	if !ok {
		return false
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Step validates the transition and returns the new status.
func Step(k Kind, from, to Status) (Status, error) {
	if _, ok := transitions[k]; !ok {
		return from, ErrUnknownKind
	}
	if !Can(k, from, to) {
		return from, ErrIllegalTransition
	}
	return to, nil
}

// Terminal reports whether no transition leads out of s for the given kind.
func Terminal(k Kind, s Status) bool {
	return len(transitions[k][s]) == 0
}

// Unresolved reports whether the entity can still be cancelled by its owner.
func Unresolved(k Kind, s Status) bool {
	return Can(k, s, Cancelled)
}

// ByStatus is the stable filter used by every status tab: it keeps input
// order and never duplicates an item.
func ByStatus[T any](items []T, get func(T) Status, want Status) []T {
	var out []T
	for _, it := range items {
		if get(it) == want {
			out = append(out, it)
		}
	}
	return out
}
