package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRehydrateWithValidToken(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/me" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		json.NewEncoder(w).Encode(User{ID: "u1", Username: "jordan"})
	})

	tokens := NewMemoryTokenStore()
	tokens.Save("tok-1")
	sess := NewSession(New(srv.URL, tokens))

	if !sess.Loading() {
		t.Fatal("session should report loading before Rehydrate")
	}
	if err := sess.Rehydrate(testCtx(t)); err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	if sess.Loading() {
		t.Error("session still loading after Rehydrate")
	}
	if !sess.Authenticated() {
		t.Fatal("expected authenticated session")
	}
	if got := sess.User().Username; got != "jordan" {
		t.Errorf("User().Username = %q, want jordan", got)
	}
}

func TestRehydrateWithoutToken(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected without a stored token, got %s", r.URL.Path)
	})

	sess := NewSession(New(srv.URL, NewMemoryTokenStore()))
	if err := sess.Rehydrate(testCtx(t)); err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	if sess.Loading() {
		t.Error("session still loading after Rehydrate")
	}
	if sess.Authenticated() {
		t.Error("session should not be authenticated")
	}
}

func TestRehydrateClearsRejectedToken(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
	})

	tokens := NewMemoryTokenStore()
	tokens.Save("stale")
	sess := NewSession(New(srv.URL, tokens))

	err := sess.Rehydrate(testCtx(t))
	if err == nil {
		t.Fatal("expected error for rejected token")
	}
	if sess.Authenticated() {
		t.Error("session should not be authenticated")
	}
	if tok, _ := tokens.Token(); tok != "" {
		t.Errorf("stale token not cleared, still %q", tok)
	}
}

func TestLoginPersistsToken(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var creds Credentials
			json.NewDecoder(r.Body).Decode(&creds)
			if creds.Email != "j@hoops.gg" {
				t.Errorf("login email = %q", creds.Email)
			}
			json.NewEncoder(w).Encode(TokenResponse{AccessToken: "fresh", TokenType: "bearer", UserID: "u1"})
		case "/api/users/me":
			json.NewEncoder(w).Encode(User{ID: "u1", Username: "jordan"})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	})

	tokens := NewMemoryTokenStore()
	sess := NewSession(New(srv.URL, tokens))

	u, err := sess.Login(testCtx(t), Credentials{Email: "j@hoops.gg", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != "u1" {
		t.Errorf("user ID = %q, want u1", u.ID)
	}
	if tok, _ := tokens.Token(); tok != "fresh" {
		t.Errorf("stored token = %q, want fresh", tok)
	}
	if !sess.Authenticated() {
		t.Error("expected authenticated session after Login")
	}
}

func TestLogoutClearsLocalState(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(User{ID: "u1"})
	})

	tokens := NewMemoryTokenStore()
	tokens.Save("tok")
	sess := NewSession(New(srv.URL, tokens))
	if err := sess.Rehydrate(testCtx(t)); err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}

	if err := sess.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if sess.Authenticated() {
		t.Error("session still authenticated after Logout")
	}
	if tok, _ := tokens.Token(); tok != "" {
		t.Errorf("token not cleared, still %q", tok)
	}
}

// The package's own type names must be enough to drive every call; this
// would not compile if a request or response type lived only under internal.
func TestExportedTypesCoverTheContract(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/courts":
			var court Court
			json.NewDecoder(r.Body).Decode(&court)
			court.ID = "ct1"
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(court)
		case "/api/stats/leaderboard":
			json.NewEncoder(w).Encode([]LeaderboardRow{{Rank: 1, Username: "jordan", Points: 10}})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	})

	c := New(srv.URL, NewMemoryTokenStore())
	ctx := testCtx(t)

	created, err := c.CreateCourt(ctx, Court{
		Name:       "Downtown Basketball Court",
		Location:   "123 Main St",
		HourlyRate: 50,
		Amenities:  StringList{"parking"},
	})
	if err != nil {
		t.Fatalf("CreateCourt: %v", err)
	}
	if created.ID != "ct1" || created.Name != "Downtown Basketball Court" {
		t.Errorf("created court = %+v", created)
	}

	rows, err := c.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(rows) != 1 || rows[0].Username != "jordan" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestAPIErrorCarriesStatusAndMessage(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "team is full"})
	})

	c := New(srv.URL, NewMemoryTokenStore())
	err := c.JoinTeam(testCtx(t), "t1")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Message != "team is full" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
