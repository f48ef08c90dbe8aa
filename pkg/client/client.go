// Package client is the Go consumer of the platform API: one method per
// endpoint, bearer token injected from a TokenStore when present, and
// failures returned as typed *APIError values rather than bare strings.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// APIError carries the server's status code and message so callers can
// branch on failure as data.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	base   string
	http   *http.Client
	tokens TokenStore
}

// New builds a client for the given host; the "/api" prefix is appended
// here, matching how the frontend is configured.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/") + "/api",
		http:   http.DefaultClient,
		tokens: tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// do sends one request. No retry, no timeout of its own: cancellation and
// deadlines belong to the caller's context.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok, err := c.tokens.Token(); err == nil && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		msg := "request failed"
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

// Login authenticates and persists the token on success.
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	var tok TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &tok); err != nil {
		return nil, err
	}
	if c.tokens != nil {
		if err := c.tokens.Save(tok.AccessToken); err != nil {
			return nil, err
		}
	}
	return &tok, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (*TokenResponse, error) {
	var tok TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", reg, &tok); err != nil {
		return nil, err
	}
	if c.tokens != nil {
		if err := c.tokens.Save(tok.AccessToken); err != nil {
			return nil, err
		}
	}
	return &tok, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ProfilePatch mirrors the updatable profile fields; nil means unchanged.
type ProfilePatch struct {
	FullName        *string `json:"full_name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ProfilePicture  *string `json:"profile_picture,omitempty"`
	Position        *string `json:"position,omitempty"`
	Height          *string `json:"height,omitempty"`
	Weight          *string `json:"weight,omitempty"`
	ExperienceLevel *string `json:"experience_level,omitempty"`
	Bio             *string `json:"bio,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPut, "/users/me", patch, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Courts(ctx context.Context) ([]Court, error) {
	var out []Court
	err := c.do(ctx, http.MethodGet, "/courts", nil, &out)
	return out, err
}

func (c *Client) Court(ctx context.Context, id string) (*Court, error) {
	var out Court
	if err := c.do(ctx, http.MethodGet, "/courts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCourt(ctx context.Context, court Court) (*Court, error) {
	var out Court
	if err := c.do(ctx, http.MethodPost, "/courts", court, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type BookingRequest struct {
	CourtID         string `json:"court_id"`
	Date            string `json:"date"`       // YYYY-MM-DD
	StartTime       string `json:"start_time"` // HH:MM
	DurationHours   int    `json:"duration_hours"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	err := c.do(ctx, http.MethodGet, "/bookings/me", nil, &out)
	return out, err
}

func (c *Client) CancelBooking(ctx context.Context, id string) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodPost, "/bookings/"+url.PathEscape(id)+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Tournaments(ctx context.Context) ([]Tournament, error) {
	var out []Tournament
	err := c.do(ctx, http.MethodGet, "/tournaments", nil, &out)
	return out, err
}

func (c *Client) RegisterForTournament(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/tournaments/"+url.PathEscape(id)+"/register", nil, nil)
}

func (c *Client) Challenges(ctx context.Context) ([]Challenge, error) {
	var out []Challenge
	err := c.do(ctx, http.MethodGet, "/challenges", nil, &out)
	return out, err
}

type ChallengeRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	ChallengedUser string  `json:"challenged_user,omitempty"`
	CourtID        string  `json:"court_id,omitempty"`
	ScheduledDate  string  `json:"scheduled_date,omitempty"`
	WagerAmount    float64 `json:"wager_amount"`
}

func (c *Client) CreateChallenge(ctx context.Context, req ChallengeRequest) (*Challenge, error) {
	var out Challenge
	if err := c.do(ctx, http.MethodPost, "/challenges", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptChallenge(ctx context.Context, id string) (*Challenge, error) {
	var out Challenge
	if err := c.do(ctx, http.MethodPost, "/challenges/"+url.PathEscape(id)+"/accept", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var out []Team
	err := c.do(ctx, http.MethodGet, "/teams", nil, &out)
	return out, err
}

type TeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxMembers  int    `json:"max_members"`
	TeamLogo    string `json:"team_logo,omitempty"`
}

func (c *Client) CreateTeam(ctx context.Context, req TeamRequest) (*Team, error) {
	var out Team
	if err := c.do(ctx, http.MethodPost, "/teams", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) JoinTeam(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/teams/"+url.PathEscape(id)+"/join", nil, nil)
}

func (c *Client) JoinTeamByCode(ctx context.Context, referralCode string) error {
	path := "/teams/join-by-code?referral_code=" + url.QueryEscape(referralCode)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) Coaches(ctx context.Context) ([]Coach, error) {
	var out []Coach
	err := c.do(ctx, http.MethodGet, "/coaches", nil, &out)
	return out, err
}

type CoachRequest struct {
	Specialties     []string            `json:"specialties"`
	ExperienceYears int                 `json:"experience_years"`
	Certifications  []string            `json:"certifications"`
	HourlyRate      float64             `json:"hourly_rate"`
	Bio             string              `json:"bio,omitempty"`
	Availability    map[string][]string `json:"availability"`
}

func (c *Client) CreateCoachProfile(ctx context.Context, req CoachRequest) (*Coach, error) {
	var out Coach
	if err := c.do(ctx, http.MethodPost, "/coaches", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type GameRequest struct {
	Player2ID     string `json:"player2_id,omitempty"`
	CourtID       string `json:"court_id"`
	ScheduledDate string `json:"scheduled_date"`
	GameType      string `json:"game_type"`
}

func (c *Client) CreateGame(ctx context.Context, req GameRequest) (*Game, error) {
	var out Game
	if err := c.do(ctx, http.MethodPost, "/games", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type GameState struct {
	Version int         `json:"version"`
	Game    Game `json:"game"`
}

// UpdateGameScore applies a signed delta (+1, +2, +3 or -1) to one player.
func (c *Client) UpdateGameScore(ctx context.Context, id, player string, delta int) (*GameState, error) {
	req := map[string]any{"player": player, "delta": delta}
	var out GameState
	if err := c.do(ctx, http.MethodPut, "/games/"+url.PathEscape(id)+"/score", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EndGame(ctx context.Context, id string) (*GameState, error) {
	var out GameState
	if err := c.do(ctx, http.MethodPost, "/games/"+url.PathEscape(id)+"/end", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyGames(ctx context.Context) ([]Game, error) {
	var out []Game
	err := c.do(ctx, http.MethodGet, "/games/me", nil, &out)
	return out, err
}

// PlayerStats is the signed-in user's dashboard summary.
type PlayerStats struct {
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	WinRate         float64 `json:"win_rate"`
	Points          int     `json:"points"`
	Rank            int     `json:"rank"`
	ProgressPercent int     `json:"progress_percent"`
}

func (c *Client) MyStats(ctx context.Context) (*PlayerStats, error) {
	var out PlayerStats
	if err := c.do(ctx, http.MethodGet, "/stats/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	var out []LeaderboardRow
	err := c.do(ctx, http.MethodGet, "/stats/leaderboard", nil, &out)
	return out, err
}

func (c *Client) Recommendations(ctx context.Context) ([]Recommendation, error) {
	var out []Recommendation
	err := c.do(ctx, http.MethodGet, "/recommendations", nil, &out)
	return out, err
}

func (c *Client) AnalyzeVideo(ctx context.Context, videoURL string) (*VideoAnalysis, error) {
	req := map[string]string{"video_url": videoURL}
	var out VideoAnalysis
	if err := c.do(ctx, http.MethodPost, "/video-analysis", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
