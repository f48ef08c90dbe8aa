package models

import (
	"time"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/status"
)

type User struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	Username        string     `gorm:"uniqueIndex" json:"username"`
	Email           string     `gorm:"uniqueIndex" json:"email"`
	PasswordHash    string     `json:"-"`
	FullName        string     `json:"full_name"`
	Phone           string     `json:"phone,omitempty"`
	ProfilePicture  string     `json:"profile_picture,omitempty"`
	Position        string     `json:"position,omitempty"`
	Height          string     `json:"height,omitempty"`
	Weight          string     `json:"weight,omitempty"`
	ExperienceLevel string     `json:"experience_level,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	Achievements    StringList `gorm:"type:jsonb" json:"achievements"`
	IsCoach         bool       `json:"is_coach"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Court struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Description string     `json:"description,omitempty"`
	CourtType   string     `json:"court_type"`   // indoor, outdoor
	SurfaceType string     `json:"surface_type"` // hardwood, concrete, ...
	Amenities   StringList `gorm:"type:jsonb" json:"amenities"`
	HourlyRate  float64    `json:"hourly_rate"`
	Capacity    int        `json:"capacity"`
	IsAvailable bool       `json:"is_available"`
	Images      StringList `gorm:"type:jsonb" json:"images"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Booking struct {
	ID              string        `gorm:"primaryKey" json:"id"`
	UserID          string        `gorm:"index" json:"user_id"`
	CourtID         string        `gorm:"index" json:"court_id"`
	Date            time.Time     `json:"date"`
	StartTime       time.Time     `gorm:"index" json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
	DurationHours   int           `json:"duration_hours"`
	TotalCost       float64       `json:"total_cost"`
	Status          status.Status `gorm:"index" json:"status"`
	RFIDCode        string        `json:"rfid_code"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

type Tournament struct {
	ID                  string        `gorm:"primaryKey" json:"id"`
	Name                string        `json:"name"`
	Description         string        `json:"description,omitempty"`
	StartDate           time.Time     `json:"start_date"`
	EndDate             time.Time     `json:"end_date"`
	EntryFee            float64       `json:"entry_fee"`
	MaxParticipants     int           `json:"max_participants"`
	CurrentParticipants int           `json:"current_participants"`
	PrizePool           float64       `json:"prize_pool"`
	Rules               StringList    `gorm:"type:jsonb" json:"rules"`
	Status              status.Status `gorm:"index" json:"status"`
	Participants        StringList    `gorm:"type:jsonb" json:"participants"`
	CreatedBy           string        `gorm:"index" json:"created_by"`
	CreatedAt           time.Time     `json:"created_at"`
}

type Challenge struct {
	ID             string        `gorm:"primaryKey" json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	CreatedBy      string        `gorm:"index" json:"created_by"`
	ChallengedUser string        `gorm:"index" json:"challenged_user,omitempty"`
	CourtID        string        `json:"court_id,omitempty"`
	ScheduledDate  *time.Time    `json:"scheduled_date,omitempty"`
	WagerAmount    float64       `json:"wager_amount"`
	Status         status.Status `gorm:"index" json:"status"`
	Winner         string        `json:"winner,omitempty"`
	Score          *Score        `gorm:"type:jsonb" json:"score,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

type Team struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	CaptainID    string     `gorm:"index" json:"captain_id"`
	Members      StringList `gorm:"type:jsonb" json:"members"`
	MaxMembers   int        `json:"max_members"`
	TeamLogo     string     `json:"team_logo,omitempty"`
	Achievements StringList `gorm:"type:jsonb" json:"achievements"`
	ReferralCode string     `gorm:"uniqueIndex" json:"referral_code"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Coach struct {
	ID              string      `gorm:"primaryKey" json:"id"`
	UserID          string      `gorm:"uniqueIndex" json:"user_id"`
	Specialties     StringList  `gorm:"type:jsonb" json:"specialties"`
	ExperienceYears int         `json:"experience_years"`
	Certifications  StringList  `gorm:"type:jsonb" json:"certifications"`
	HourlyRate      float64     `json:"hourly_rate"`
	Bio             string      `json:"bio,omitempty"`
	Availability    WeeklySlots `gorm:"type:jsonb" json:"availability"`
	Rating          float64     `json:"rating"`
	TotalReviews    int         `json:"total_reviews"`
	IsAvailable     bool        `json:"is_available"`
	CreatedAt       time.Time   `json:"created_at"`
}

type Game struct {
	ID              string        `gorm:"primaryKey" json:"id"`
	Player1ID       string        `gorm:"index" json:"player1_id"`
	Player2ID       string        `gorm:"index" json:"player2_id,omitempty"`
	Team1ID         string        `json:"team1_id,omitempty"`
	Team2ID         string        `json:"team2_id,omitempty"`
	CourtID         string        `json:"court_id"`
	TournamentID    string        `json:"tournament_id,omitempty"`
	ChallengeID     string        `json:"challenge_id,omitempty"`
	ScheduledDate   time.Time     `json:"scheduled_date"`
	ActualStartTime *time.Time    `json:"actual_start_time,omitempty"`
	ActualEndTime   *time.Time    `json:"actual_end_time,omitempty"`
	Score           Score         `gorm:"type:jsonb" json:"score"`
	Winner          string        `json:"winner,omitempty"`
	GameType        string        `json:"game_type"` // 1v1, 2v2, 5v5, ...
	Status          status.Status `gorm:"index" json:"status"`
	// Version guards REST score writes against stale read-modify-write
	// cycles; live lobbies bypass it by owning the state outright.
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}
