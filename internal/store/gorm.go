package store

import (
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/status"
)

type GormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&models.User{}, &models.Court{}, &models.Booking{},
		&models.Tournament{}, &models.Challenge{}, &models.Team{},
		&models.Coach{}, &models.Game{},
	)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ? OR username = ?", u.Email, u.Username).Take(&existing).Error
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(u).Error
	})
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Take(&u, "email = ?", email).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *GormStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Take(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&u, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		applyPatch(&u, patch)
		return tx.Save(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func applyPatch(u *models.User, p UserPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.FullName, p.FullName)
	set(&u.Phone, p.Phone)
	set(&u.ProfilePicture, p.ProfilePicture)
	set(&u.Position, p.Position)
	set(&u.Height, p.Height)
	set(&u.Weight, p.Weight)
	set(&u.ExperienceLevel, p.ExperienceLevel)
	set(&u.Bio, p.Bio)
	if p.IsCoach != nil {
		u.IsCoach = *p.IsCoach
	}
}

func (s *GormStore) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) CreateCourt(ctx context.Context, c *models.Court) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *GormStore) Courts(ctx context.Context) ([]models.Court, error) {
	var out []models.Court
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) CourtByID(ctx context.Context, id string) (*models.Court, error) {
	var c models.Court
	if err := s.db.WithContext(ctx).Take(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *GormStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *GormStore) BookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("start_time ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) BookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).Take(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *GormStore) UpdateBookingStatus(ctx context.Context, id string, to status.Status) (*models.Booking, error) {
	var b models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&b, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		next, err := status.Step(status.KindBooking, b.Status, to)
		if err != nil {
			return err
		}
		b.Status = next
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *GormStore) CreateTournament(ctx context.Context, t *models.Tournament) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *GormStore) Tournaments(ctx context.Context) ([]models.Tournament, error) {
	var out []models.Tournament
	if err := s.db.WithContext(ctx).Order("start_date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterParticipant locks the row so the capacity check and the append
// cannot race with a concurrent registration.
func (s *GormStore) RegisterParticipant(ctx context.Context, tournamentID, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Tournament
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&t, "id = ?", tournamentID).Error; err != nil {
			return notFound(err)
		}
		if slices.Contains(t.Participants, userID) {
			return ErrAlreadyRegistered
		}
		if t.CurrentParticipants >= t.MaxParticipants {
			return ErrTournamentFull
		}
		t.Participants = append(t.Participants, userID)
		t.CurrentParticipants++
		return tx.Save(&t).Error
	})
}

func (s *GormStore) CreateChallenge(ctx context.Context, c *models.Challenge) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *GormStore) Challenges(ctx context.Context) ([]models.Challenge, error) {
	var out []models.Challenge
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) AcceptChallenge(ctx context.Context, id, userID string) (*models.Challenge, error) {
	var c models.Challenge
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&c, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if c.Status != status.Open {
			return ErrChallengeNotOpen
		}
		if c.CreatedBy == userID {
			return ErrOwnChallenge
		}
		next, err := status.Step(status.KindChallenge, c.Status, status.Accepted)
		if err != nil {
			return err
		}
		c.Status = next
		c.ChallengedUser = userID
		return tx.Save(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GormStore) CancelChallenge(ctx context.Context, id, userID string) (*models.Challenge, error) {
	var c models.Challenge
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&c, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if c.CreatedBy != userID {
			return ErrNotOwner
		}
		next, err := status.Step(status.KindChallenge, c.Status, status.Cancelled)
		if err != nil {
			return err
		}
		c.Status = next
		return tx.Save(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GormStore) CreateTeam(ctx context.Context, t *models.Team) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *GormStore) Teams(ctx context.Context) ([]models.Team, error) {
	var out []models.Team
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) JoinTeam(ctx context.Context, teamID, userID string) (*models.Team, error) {
	return s.join(ctx, "id = ?", teamID, userID)
}

func (s *GormStore) JoinTeamByCode(ctx context.Context, referralCode, userID string) (*models.Team, error) {
	return s.join(ctx, "referral_code = ?", referralCode, userID)
}

func (s *GormStore) join(ctx context.Context, cond, arg, userID string) (*models.Team, error) {
	var t models.Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&t, cond, arg).Error; err != nil {
			return notFound(err)
		}
		if slices.Contains(t.Members, userID) {
			return ErrAlreadyMember
		}
		if len(t.Members) >= t.MaxMembers {
			return ErrTeamFull
		}
		t.Members = append(t.Members, userID)
		return tx.Save(&t).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *GormStore) CreateCoach(ctx context.Context, c *models.Coach) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Coach
		err := tx.Where("user_id = ?", c.UserID).Take(&existing).Error
		if err == nil {
			return ErrCoachExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(c).Error
	})
}

func (s *GormStore) Coaches(ctx context.Context) ([]models.Coach, error) {
	var out []models.Coach
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) CreateGame(ctx context.Context, g *models.Game) error {
	return s.db.WithContext(ctx).Create(g).Error
}

func (s *GormStore) GameByID(ctx context.Context, id string) (*models.Game, error) {
	var g models.Game
	if err := s.db.WithContext(ctx).Take(&g, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (s *GormStore) GamesByUser(ctx context.Context, userID string) ([]models.Game, error) {
	var out []models.Game
	err := s.db.WithContext(ctx).
		Where("player1_id = ? OR player2_id = ?", userID, userID).
		Order("created_at ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) SaveGameState(ctx context.Context, id string, score models.Score, st status.Status, winner string, fromVersion int) (*models.Game, error) {
	var g models.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&g, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if g.Version != fromVersion {
			return ErrVersionConflict
		}
		g.Score = score
		g.Status = st
		g.Winner = winner
		g.Version++
		return tx.Save(&g).Error
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GormStore) CompletedGames(ctx context.Context) ([]models.Game, error) {
	var out []models.Game
	err := s.db.WithContext(ctx).Where("status = ?", status.Completed).Order("created_at ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
