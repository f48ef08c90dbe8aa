package store

import (
	"context"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/status"
)

// UserPatch is a partial profile update; nil fields are left untouched.
type UserPatch struct {
	FullName        *string
	Phone           *string
	ProfilePicture  *string
	Position        *string
	Height          *string
	Weight          *string
	ExperienceLevel *string
	Bio             *string
	IsCoach         *bool
}

// Store is everything the HTTP layer needs from persistence. The gorm
// implementation backs the real server; the memory implementation backs
// the mock server and tests.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error)
	Users(ctx context.Context) ([]models.User, error)

	CreateCourt(ctx context.Context, c *models.Court) error
	Courts(ctx context.Context) ([]models.Court, error)
	CourtByID(ctx context.Context, id string) (*models.Court, error)

	CreateBooking(ctx context.Context, b *models.Booking) error
	BookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
	BookingByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, to status.Status) (*models.Booking, error)

	CreateTournament(ctx context.Context, t *models.Tournament) error
	Tournaments(ctx context.Context) ([]models.Tournament, error)
	RegisterParticipant(ctx context.Context, tournamentID, userID string) error

	CreateChallenge(ctx context.Context, c *models.Challenge) error
	Challenges(ctx context.Context) ([]models.Challenge, error)
	AcceptChallenge(ctx context.Context, id, userID string) (*models.Challenge, error)
	CancelChallenge(ctx context.Context, id, userID string) (*models.Challenge, error)

	CreateTeam(ctx context.Context, t *models.Team) error
	Teams(ctx context.Context) ([]models.Team, error)
	JoinTeam(ctx context.Context, teamID, userID string) (*models.Team, error)
	JoinTeamByCode(ctx context.Context, referralCode, userID string) (*models.Team, error)

	CreateCoach(ctx context.Context, c *models.Coach) error
	Coaches(ctx context.Context) ([]models.Coach, error)

	CreateGame(ctx context.Context, g *models.Game) error
	GameByID(ctx context.Context, id string) (*models.Game, error)
	GamesByUser(ctx context.Context, userID string) ([]models.Game, error)
	// SaveGameState applies a full score/status/winner snapshot guarded by
	// an optimistic version check.
	SaveGameState(ctx context.Context, id string, score models.Score, st status.Status, winner string, fromVersion int) (*models.Game, error)
	CompletedGames(ctx context.Context) ([]models.Game, error)
}
