package store

import "errors"

var ErrNotFound = errors.New("not found")
var ErrDuplicate = errors.New("already exists")
var ErrTeamFull = errors.New("team is full")
var ErrAlreadyMember = errors.New("already a member of this team")
var ErrTournamentFull = errors.New("tournament is full")
var ErrAlreadyRegistered = errors.New("already registered for this tournament")
var ErrChallengeNotOpen = errors.New("challenge is not open")
var ErrNotOwner = errors.New("not the owner")
var ErrOwnChallenge = errors.New("cannot accept your own challenge")
var ErrCoachExists = errors.New("coach profile already exists")
var ErrVersionConflict = errors.New("stale game version")
