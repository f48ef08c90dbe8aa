package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/hub"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/store"
)

type testAPI struct {
	t     *testing.T
	srv   *httptest.Server
	store *store.Memory
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	mem := store.NewMemory()
	s := NewServer(Options{
		Store:     mem,
		Hub:       hub.NewHub(ctx),
		JWTSecret: []byte("test-secret"),
		JWTTTL:    time.Hour,
	})
	srv := httptest.NewServer(SetupRoutes(s))
	t.Cleanup(srv.Close)
	return &testAPI{t: t, srv: srv, store: mem}
}

// do sends one JSON request and decodes the response into out (if non-nil).
func (a *testAPI) do(method, path, token string, in, out any) int {
	a.t.Helper()
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			a.t.Fatalf("encode request: %v", err)
		}
	}
	req, err := http.NewRequest(method, a.srv.URL+"/api"+path, &body)
	if err != nil {
		a.t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.srv.Client().Do(req)
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			a.t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

// register creates an account and returns its id and access token.
func (a *testAPI) register(username string) (id, token string) {
	a.t.Helper()
	var tok tokenResponse
	code := a.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username":  username,
		"email":     username + "@hoops.gg",
		"password":  "secret123",
		"full_name": username + " Test",
	}, &tok)
	if code != http.StatusCreated {
		a.t.Fatalf("register %s: status %d", username, code)
	}
	return tok.UserID, tok.AccessToken
}

func (a *testAPI) createCourt(token string, rate float64) models.Court {
	a.t.Helper()
	var court models.Court
	code := a.do(http.MethodPost, "/courts", token, map[string]any{
		"name":        "Test Court",
		"location":    "123 Main St",
		"court_type":  "indoor",
		"hourly_rate": rate,
	}, &court)
	if code != http.StatusCreated {
		a.t.Fatalf("create court: status %d", code)
	}
	return court
}

func TestRegisterLoginMe(t *testing.T) {
	api := newTestAPI(t)
	id, _ := api.register("jordan")

	var tok tokenResponse
	code := api.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "jordan@hoops.gg", "password": "secret123",
	}, &tok)
	if code != http.StatusOK {
		t.Fatalf("login: status %d", code)
	}
	if tok.UserID != id {
		t.Errorf("login user_id = %q, want %q", tok.UserID, id)
	}

	var me models.User
	if code := api.do(http.MethodGet, "/users/me", tok.AccessToken, nil, &me); code != http.StatusOK {
		t.Fatalf("/users/me: status %d", code)
	}
	if me.Username != "jordan" {
		t.Errorf("me.Username = %q", me.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	api := newTestAPI(t)
	api.register("jordan")

	code := api.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "jordan@hoops.gg", "password": "wrong",
	}, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("login with wrong password: status %d, want 401", code)
	}

	// Unknown email answers with the same status so accounts cannot be probed.
	code = api.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ghost@hoops.gg", "password": "secret123",
	}, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("login with unknown email: status %d, want 401", code)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	api := newTestAPI(t)
	api.register("jordan")

	code := api.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": "jordan2", "email": "jordan@hoops.gg",
		"password": "secret123", "full_name": "Jordan Two",
	}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("duplicate email: status %d, want 400", code)
	}
}

func TestAuthRequired(t *testing.T) {
	api := newTestAPI(t)
	for _, path := range []string{"/users/me", "/bookings/me", "/games/me"} {
		if code := api.do(http.MethodGet, path, "", nil, nil); code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status %d, want 401", path, code)
		}
	}
	if code := api.do(http.MethodGet, "/users/me", "garbage-token", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("GET /users/me with bad token: status %d, want 401", code)
	}
}

func TestUpdateProfile(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.register("jordan")

	var updated models.User
	code := api.do(http.MethodPut, "/users/me", token, map[string]string{
		"position": "point guard", "height": "6'2\"",
	}, &updated)
	if code != http.StatusOK {
		t.Fatalf("update profile: status %d", code)
	}
	if updated.Position != "point guard" {
		t.Errorf("Position = %q", updated.Position)
	}
	if updated.FullName != "jordan Test" {
		t.Errorf("FullName = %q, unset fields must survive the patch", updated.FullName)
	}
}

func TestBookingCostDerivedFromCourtRate(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.register("jordan")
	court := api.createCourt(token, 50)

	date := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	var booking models.Booking
	code := api.do(http.MethodPost, "/bookings", token, map[string]any{
		"court_id": court.ID, "date": date, "start_time": "18:00",
		"duration_hours": 3,
		// The client has no say over cost.
		"total_cost": 1,
	}, &booking)
	if code != http.StatusCreated {
		t.Fatalf("create booking: status %d", code)
	}
	if booking.TotalCost != 150 {
		t.Errorf("TotalCost = %v, want 150", booking.TotalCost)
	}
	if booking.Status != "pending" {
		t.Errorf("Status = %q, want pending", booking.Status)
	}
	if len(booking.RFIDCode) != 8 {
		t.Errorf("RFIDCode = %q, want 8 characters", booking.RFIDCode)
	}
}

func TestBookingRejectsBadInput(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.register("jordan")
	court := api.createCourt(token, 50)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"zero duration", map[string]any{"court_id": court.ID, "date": tomorrow, "start_time": "18:00", "duration_hours": 0}},
		{"five hours", map[string]any{"court_id": court.ID, "date": tomorrow, "start_time": "18:00", "duration_hours": 5}},
		{"past date", map[string]any{"court_id": court.ID, "date": "2020-01-01", "start_time": "18:00", "duration_hours": 2}},
		{"missing court", map[string]any{"date": tomorrow, "start_time": "18:00", "duration_hours": 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := api.do(http.MethodPost, "/bookings", token, tt.body, nil); code != http.StatusBadRequest {
				t.Errorf("status %d, want 400", code)
			}
		})
	}

	body := map[string]any{"court_id": "missing", "date": tomorrow, "start_time": "18:00", "duration_hours": 2}
	if code := api.do(http.MethodPost, "/bookings", token, body, nil); code != http.StatusNotFound {
		t.Errorf("unknown court: status %d, want 404", code)
	}
}

func TestCancelBooking(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.register("jordan")
	_, otherToken := api.register("rival")
	court := api.createCourt(token, 50)

	date := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	var booking models.Booking
	api.do(http.MethodPost, "/bookings", token, map[string]any{
		"court_id": court.ID, "date": date, "start_time": "18:00", "duration_hours": 1,
	}, &booking)

	if code := api.do(http.MethodPost, "/bookings/"+booking.ID+"/cancel", otherToken, nil, nil); code != http.StatusForbidden {
		t.Errorf("cancel foreign booking: status %d, want 403", code)
	}

	var cancelled models.Booking
	if code := api.do(http.MethodPost, "/bookings/"+booking.ID+"/cancel", token, nil, &cancelled); code != http.StatusOK {
		t.Fatalf("cancel booking: status %d", code)
	}
	if cancelled.Status != "cancelled" {
		t.Errorf("Status = %q, want cancelled", cancelled.Status)
	}

	if code := api.do(http.MethodPost, "/bookings/"+booking.ID+"/cancel", token, nil, nil); code != http.StatusBadRequest {
		t.Errorf("cancel twice: status %d, want 400", code)
	}
}

func TestTeamCapacity(t *testing.T) {
	api := newTestAPI(t)
	_, captain := api.register("captain")

	if code := api.do(http.MethodPost, "/teams", captain, map[string]any{"name": "Tiny", "max_members": 2}, nil); code != http.StatusBadRequest {
		t.Errorf("max_members below 5: status %d, want 400", code)
	}

	var team models.Team
	code := api.do(http.MethodPost, "/teams", captain, map[string]any{"name": "Ballers", "max_members": 5}, &team)
	if code != http.StatusCreated {
		t.Fatalf("create team: status %d", code)
	}
	if len(team.Members) != 1 {
		t.Fatalf("captain not auto-enrolled, members = %v", team.Members)
	}
	if len(team.ReferralCode) != 6 {
		t.Errorf("ReferralCode = %q, want 6 characters", team.ReferralCode)
	}

	for i := 0; i < 4; i++ {
		_, tok := api.register(fmt.Sprintf("player%d", i))
		if code := api.do(http.MethodPost, "/teams/"+team.ID+"/join", tok, nil, nil); code != http.StatusOK {
			t.Fatalf("join %d: status %d", i, code)
		}
	}

	_, late := api.register("latecomer")
	if code := api.do(http.MethodPost, "/teams/"+team.ID+"/join", late, nil, nil); code != http.StatusBadRequest {
		t.Errorf("join full team: status %d, want 400", code)
	}
	if code := api.do(http.MethodPost, "/teams/"+team.ID+"/join", captain, nil, nil); code != http.StatusBadRequest {
		t.Errorf("join twice: status %d, want 400", code)
	}
}

func TestJoinTeamByReferralCode(t *testing.T) {
	api := newTestAPI(t)
	_, captain := api.register("captain")
	var team models.Team
	api.do(http.MethodPost, "/teams", captain, map[string]any{"name": "Ballers", "max_members": 10}, &team)

	_, tok := api.register("recruit")
	var joined map[string]string
	code := api.do(http.MethodPost, "/teams/join-by-code?referral_code="+team.ReferralCode, tok, nil, &joined)
	if code != http.StatusOK {
		t.Fatalf("join by code: status %d", code)
	}
	if joined["team_name"] != "Ballers" {
		t.Errorf("joined team %q, want Ballers", joined["team_name"])
	}

	_, tok2 := api.register("lost")
	if code := api.do(http.MethodPost, "/teams/join-by-code?referral_code=NOPE42", tok2, nil, nil); code != http.StatusNotFound {
		t.Errorf("bad referral code: status %d, want 404", code)
	}
}

func TestChallengeLifecycle(t *testing.T) {
	api := newTestAPI(t)
	_, creator := api.register("creator")
	_, rival := api.register("rival")

	var ch models.Challenge
	code := api.do(http.MethodPost, "/challenges", creator, map[string]any{
		"title": "1v1 to 21", "wager_amount": 20,
	}, &ch)
	if code != http.StatusCreated {
		t.Fatalf("create challenge: status %d", code)
	}
	if ch.Status != "open" {
		t.Errorf("Status = %q, want open", ch.Status)
	}

	if code := api.do(http.MethodPost, "/challenges/"+ch.ID+"/accept", creator, nil, nil); code != http.StatusBadRequest {
		t.Errorf("accept own challenge: status %d, want 400", code)
	}

	var accepted models.Challenge
	if code := api.do(http.MethodPost, "/challenges/"+ch.ID+"/accept", rival, nil, &accepted); code != http.StatusOK {
		t.Fatalf("accept challenge: status %d", code)
	}
	if accepted.Status != "accepted" {
		t.Errorf("Status = %q, want accepted", accepted.Status)
	}

	_, third := api.register("third")
	if code := api.do(http.MethodPost, "/challenges/"+ch.ID+"/accept", third, nil, nil); code != http.StatusBadRequest {
		t.Errorf("accept non-open challenge: status %d, want 400", code)
	}

	if code := api.do(http.MethodPost, "/challenges/"+ch.ID+"/cancel", rival, nil, nil); code != http.StatusForbidden {
		t.Errorf("cancel by non-creator: status %d, want 403", code)
	}
	var cancelled models.Challenge
	if code := api.do(http.MethodPost, "/challenges/"+ch.ID+"/cancel", creator, nil, &cancelled); code != http.StatusOK {
		t.Fatalf("cancel accepted challenge: status %d", code)
	}
	if cancelled.Status != "cancelled" {
		t.Errorf("Status = %q, want cancelled", cancelled.Status)
	}
	if code := api.do(http.MethodPost, "/challenges/"+ch.ID+"/cancel", creator, nil, nil); code != http.StatusBadRequest {
		t.Errorf("cancel twice: status %d, want 400", code)
	}
}

func TestChallengeWagerValidation(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.register("creator")

	if code := api.do(http.MethodPost, "/challenges", token, map[string]any{"title": "1v1", "wager_amount": -5}, nil); code != http.StatusBadRequest {
		t.Errorf("negative wager: status %d, want 400", code)
	}
	if code := api.do(http.MethodPost, "/challenges", token, map[string]any{"wager_amount": 5}, nil); code != http.StatusBadRequest {
		t.Errorf("missing title: status %d, want 400", code)
	}
}

func TestTournamentRegistration(t *testing.T) {
	api := newTestAPI(t)
	_, organizer := api.register("organizer")

	start := time.Now().UTC().AddDate(0, 0, 7).Format(time.RFC3339)
	end := time.Now().UTC().AddDate(0, 0, 8).Format(time.RFC3339)
	var tournament models.Tournament
	code := api.do(http.MethodPost, "/tournaments", organizer, map[string]any{
		"name": "3v3 Open", "start_date": start, "end_date": end, "max_participants": 2,
	}, &tournament)
	if code != http.StatusCreated {
		t.Fatalf("create tournament: status %d", code)
	}
	if tournament.Status != "upcoming" {
		t.Errorf("Status = %q, want upcoming", tournament.Status)
	}

	_, p1 := api.register("p1")
	_, p2 := api.register("p2")
	_, p3 := api.register("p3")
	path := "/tournaments/" + tournament.ID + "/register"

	if code := api.do(http.MethodPost, path, p1, nil, nil); code != http.StatusOK {
		t.Fatalf("first registration: status %d", code)
	}
	if code := api.do(http.MethodPost, path, p1, nil, nil); code != http.StatusBadRequest {
		t.Errorf("duplicate registration: status %d, want 400", code)
	}
	if code := api.do(http.MethodPost, path, p2, nil, nil); code != http.StatusOK {
		t.Fatalf("second registration: status %d", code)
	}
	if code := api.do(http.MethodPost, path, p3, nil, nil); code != http.StatusBadRequest {
		t.Errorf("registration beyond capacity: status %d, want 400", code)
	}
}

func TestCoachRegistration(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.register("coachcarter")

	body := map[string]any{"specialties": []string{"shooting"}, "experience_years": 8, "hourly_rate": 60}
	if code := api.do(http.MethodPost, "/coaches", token, body, nil); code != http.StatusCreated {
		t.Fatalf("create coach: status %d", code)
	}
	if code := api.do(http.MethodPost, "/coaches", token, body, nil); code != http.StatusBadRequest {
		t.Errorf("second coach profile: status %d, want 400", code)
	}

	var me models.User
	api.do(http.MethodGet, "/users/me", token, nil, &me)
	if !me.IsCoach {
		t.Error("IsCoach flag not set after coach registration")
	}
}

func TestLiveGameScoring(t *testing.T) {
	api := newTestAPI(t)
	p1ID, p1 := api.register("p1")
	p2ID, p2 := api.register("p2")
	court := api.createCourt(p1, 50)

	var game models.Game
	code := api.do(http.MethodPost, "/games", p1, map[string]any{
		"player2_id": p2ID, "court_id": court.ID,
		"scheduled_date": time.Now().UTC().Format(time.RFC3339), "game_type": "1v1",
	}, &game)
	if code != http.StatusCreated {
		t.Fatalf("create game: status %d", code)
	}
	if game.Player1ID != p1ID {
		t.Errorf("Player1ID = %q, want creator", game.Player1ID)
	}

	scorePath := "/games/" + game.ID + "/score"
	var state gameStateResponse
	if code := api.do(http.MethodPut, scorePath, p1, map[string]any{"player": "player1", "delta": 2}, &state); code != http.StatusOK {
		t.Fatalf("score +2: status %d", code)
	}
	if state.Game.Score.Player1 != 2 {
		t.Errorf("Player1 score = %d, want 2", state.Game.Score.Player1)
	}
	if state.Version != 1 {
		t.Errorf("Version = %d, want 1", state.Version)
	}

	if code := api.do(http.MethodPut, scorePath, p2, map[string]any{"player": "player2", "delta": 3}, &state); code != http.StatusOK {
		t.Fatalf("score +3: status %d", code)
	}

	if code := api.do(http.MethodPut, scorePath, p1, map[string]any{"player": "player1", "delta": 5}, nil); code != http.StatusBadRequest {
		t.Errorf("illegal delta: status %d, want 400", code)
	}
	if code := api.do(http.MethodPut, scorePath, p1, map[string]any{"player": "coach", "delta": 2}, nil); code != http.StatusBadRequest {
		t.Errorf("unknown player slot: status %d, want 400", code)
	}

	if code := api.do(http.MethodPost, "/games/"+game.ID+"/end", p1, nil, &state); code != http.StatusOK {
		t.Fatalf("end game: status %d", code)
	}
	if state.Game.Status != "completed" {
		t.Errorf("Status = %q, want completed", state.Game.Status)
	}
	if state.Game.Winner != p2ID {
		t.Errorf("Winner = %q, want %q (3 beats 2)", state.Game.Winner, p2ID)
	}

	if code := api.do(http.MethodPut, scorePath, p1, map[string]any{"player": "player1", "delta": 2}, nil); code != http.StatusBadRequest {
		t.Errorf("score after end: status %d, want 400", code)
	}
}

func TestLeaderboardAfterGames(t *testing.T) {
	api := newTestAPI(t)
	p1ID, p1 := api.register("alice")
	p2ID, p2 := api.register("bob")
	_ = p2
	court := api.createCourt(p1, 50)

	var game models.Game
	api.do(http.MethodPost, "/games", p1, map[string]any{
		"player2_id": p2ID, "court_id": court.ID,
		"scheduled_date": time.Now().UTC().Format(time.RFC3339), "game_type": "1v1",
	}, &game)
	api.do(http.MethodPut, "/games/"+game.ID+"/score", p1, map[string]any{"player": "player1", "delta": 3}, nil)
	api.do(http.MethodPost, "/games/"+game.ID+"/end", p1, nil, nil)

	var rows []struct {
		Rank   int    `json:"rank"`
		UserID string `json:"user_id"`
		Points int    `json:"points"`
	}
	if code := api.do(http.MethodGet, "/stats/leaderboard", "", nil, &rows); code != http.StatusOK {
		t.Fatalf("leaderboard: status %d", code)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].UserID != p1ID || rows[0].Points != 10 {
		t.Errorf("rows[0] = %+v, want winner with 10 points", rows[0])
	}
}

func TestMyStatsProgress(t *testing.T) {
	api := newTestAPI(t)
	p1ID, p1 := api.register("alice")
	p2ID, _ := api.register("bob")
	_ = p1ID
	court := api.createCourt(p1, 50)

	var stats struct {
		Wins            int `json:"wins"`
		Points          int `json:"points"`
		ProgressPercent int `json:"progress_percent"`
	}
	if code := api.do(http.MethodGet, "/stats/me", p1, nil, &stats); code != http.StatusOK {
		t.Fatalf("stats before any games: status %d", code)
	}
	if stats.Wins != 0 || stats.ProgressPercent != 0 {
		t.Errorf("fresh stats = %+v, want zeros", stats)
	}

	var game models.Game
	api.do(http.MethodPost, "/games", p1, map[string]any{
		"player2_id": p2ID, "court_id": court.ID,
		"scheduled_date": time.Now().UTC().Format(time.RFC3339), "game_type": "1v1",
	}, &game)
	api.do(http.MethodPut, "/games/"+game.ID+"/score", p1, map[string]any{"player": "player1", "delta": 2}, nil)
	api.do(http.MethodPost, "/games/"+game.ID+"/end", p1, nil, nil)

	if code := api.do(http.MethodGet, "/stats/me", p1, nil, &stats); code != http.StatusOK {
		t.Fatalf("stats after a win: status %d", code)
	}
	if stats.Wins != 1 || stats.Points != 10 {
		t.Errorf("stats = %+v, want 1 win worth 10 points", stats)
	}
	if stats.ProgressPercent != 10 {
		t.Errorf("ProgressPercent = %d, want 10", stats.ProgressPercent)
	}
}

func TestListChallengesStatusFilter(t *testing.T) {
	api := newTestAPI(t)
	_, creator := api.register("creator")
	_, rival := api.register("rival")

	var open, taken models.Challenge
	api.do(http.MethodPost, "/challenges", creator, map[string]any{"title": "open one"}, &open)
	api.do(http.MethodPost, "/challenges", creator, map[string]any{"title": "taken one"}, &taken)
	api.do(http.MethodPost, "/challenges/"+taken.ID+"/accept", rival, nil, nil)

	var out []models.Challenge
	if code := api.do(http.MethodGet, "/challenges?status=open", "", nil, &out); code != http.StatusOK {
		t.Fatalf("filtered list: status %d", code)
	}
	if len(out) != 1 || out[0].ID != open.ID {
		t.Errorf("open challenges = %v, want only %q", out, open.ID)
	}
}

func TestRecommendationsAndVideoAnalysis(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.register("jordan")

	var recs []struct {
		Category string `json:"category"`
	}
	if code := api.do(http.MethodGet, "/recommendations", token, nil, &recs); code != http.StatusOK {
		t.Fatalf("recommendations: status %d", code)
	}
	if len(recs) == 0 {
		t.Error("expected canned recommendations")
	}

	if code := api.do(http.MethodPost, "/video-analysis", token, map[string]string{}, nil); code != http.StatusBadRequest {
		t.Errorf("video analysis without url: status %d, want 400", code)
	}
	var analysis struct {
		OverallScore float64 `json:"overall_score"`
	}
	if code := api.do(http.MethodPost, "/video-analysis", token, map[string]string{"video_url": "https://example.com/clip.mp4"}, &analysis); code != http.StatusOK {
		t.Fatalf("video analysis: status %d", code)
	}
	if analysis.OverallScore == 0 {
		t.Error("expected a non-zero overall score")
	}
}
