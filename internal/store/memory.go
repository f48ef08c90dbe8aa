package store

import (
	"context"
	"slices"
	"sync"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/status"
)

// Memory is the in-memory Store used by tests and cmd/mock-server.
// Slices keep insertion order so list endpoints are stable.
type Memory struct {
	mu          sync.Mutex
	users       []models.User
	courts      []models.Court
	bookings    []models.Booking
	tournaments []models.Tournament
	challenges  []models.Challenge
	teams       []models.Team
	coaches     []models.Coach
	games       []models.Game
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return ErrDuplicate
		}
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateUser(_ context.Context, id string, patch UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			applyPatch(&m.users[i], patch)
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) Users(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.users), nil
}

func (m *Memory) CreateCourt(_ context.Context, c *models.Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courts = append(m.courts, *c)
	return nil
}

func (m *Memory) Courts(_ context.Context) ([]models.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.courts), nil
}

func (m *Memory) CourtByID(_ context.Context, id string) (*models.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.courts {
		if m.courts[i].ID == id {
			c := m.courts[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateBooking(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = append(m.bookings, *b)
	return nil
}

func (m *Memory) BookingsByUser(_ context.Context, userID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *Memory) BookingByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateBookingStatus(_ context.Context, id string, to status.Status) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			next, err := status.Step(status.KindBooking, m.bookings[i].Status, to)
			if err != nil {
				return nil, err
			}
			m.bookings[i].Status = next
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateTournament(_ context.Context, t *models.Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournaments = append(m.tournaments, *t)
	return nil
}

func (m *Memory) Tournaments(_ context.Context) ([]models.Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.tournaments), nil
}

func (m *Memory) RegisterParticipant(_ context.Context, tournamentID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tournaments {
		t := &m.tournaments[i]
		if t.ID != tournamentID {
			continue
		}
		if slices.Contains(t.Participants, userID) {
			return ErrAlreadyRegistered
		}
		if t.CurrentParticipants >= t.MaxParticipants {
			return ErrTournamentFull
		}
		t.Participants = append(t.Participants, userID)
		t.CurrentParticipants++
		return nil
	}
	return ErrNotFound
}

func (m *Memory) CreateChallenge(_ context.Context, c *models.Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.challenges = append(m.challenges, *c)
	return nil
}

func (m *Memory) Challenges(_ context.Context) ([]models.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.challenges), nil
}

func (m *Memory) AcceptChallenge(_ context.Context, id, userID string) (*models.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.challenges {
		c := &m.challenges[i]
		if c.ID != id {
			continue
		}
		if c.Status != status.Open {
			return nil, ErrChallengeNotOpen
		}
		if c.CreatedBy == userID {
			return nil, ErrOwnChallenge
		}
		next, err := status.Step(status.KindChallenge, c.Status, status.Accepted)
		if err != nil {
			return nil, err
		}
		c.Status = next
		c.ChallengedUser = userID
		out := *c
		return &out, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) CancelChallenge(_ context.Context, id, userID string) (*models.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.challenges {
		c := &m.challenges[i]
		if c.ID != id {
			continue
		}
		if c.CreatedBy != userID {
			return nil, ErrNotOwner
		}
		next, err := status.Step(status.KindChallenge, c.Status, status.Cancelled)
		if err != nil {
			return nil, err
		}
		c.Status = next
		out := *c
		return &out, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateTeam(_ context.Context, t *models.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams = append(m.teams, *t)
	return nil
}

func (m *Memory) Teams(_ context.Context) ([]models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.teams), nil
}

func (m *Memory) JoinTeam(ctx context.Context, teamID, userID string) (*models.Team, error) {
	return m.join(func(t *models.Team) bool { return t.ID == teamID }, userID)
}

func (m *Memory) JoinTeamByCode(ctx context.Context, referralCode, userID string) (*models.Team, error) {
	return m.join(func(t *models.Team) bool { return t.ReferralCode == referralCode }, userID)
}

func (m *Memory) join(match func(*models.Team) bool, userID string) (*models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.teams {
		t := &m.teams[i]
		if !match(t) {
			continue
		}
		if slices.Contains(t.Members, userID) {
			return nil, ErrAlreadyMember
		}
		if len(t.Members) >= t.MaxMembers {
			return nil, ErrTeamFull
		}
		t.Members = append(t.Members, userID)
		out := *t
		return &out, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateCoach(_ context.Context, c *models.Coach) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.coaches {
		if existing.UserID == c.UserID {
			return ErrCoachExists
		}
	}
	m.coaches = append(m.coaches, *c)
	return nil
}

func (m *Memory) Coaches(_ context.Context) ([]models.Coach, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.coaches), nil
}

func (m *Memory) CreateGame(_ context.Context, g *models.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append(m.games, *g)
	return nil
}

func (m *Memory) GameByID(_ context.Context, id string) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.games {
		if m.games[i].ID == id {
			g := m.games[i]
			return &g, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GamesByUser(_ context.Context, userID string) ([]models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Game
	for _, g := range m.games {
		if g.Player1ID == userID || g.Player2ID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *Memory) SaveGameState(_ context.Context, id string, score models.Score, st status.Status, winner string, fromVersion int) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.games {
		g := &m.games[i]
		if g.ID != id {
			continue
		}
		if g.Version != fromVersion {
			return nil, ErrVersionConflict
		}
		g.Score = score
		g.Status = st
		g.Winner = winner
		g.Version++
		out := *g
		return &out, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) CompletedGames(_ context.Context) ([]models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Game
	for _, g := range m.games {
		if g.Status == status.Completed {
			out = append(out, g)
		}
	}
	return out, nil
}
