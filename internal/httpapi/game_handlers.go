package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/engine"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/hub"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/lobby"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/status"
)

type createGameRequest struct {
	Player2ID     string `json:"player2_id,omitempty"`
	Team1ID       string `json:"team1_id,omitempty"`
	Team2ID       string `json:"team2_id,omitempty"`
	CourtID       string `json:"court_id"`
	TournamentID  string `json:"tournament_id,omitempty"`
	ChallengeID   string `json:"challenge_id,omitempty"`
	ScheduledDate string `json:"scheduled_date"` // RFC 3339
	GameType      string `json:"game_type"`
}

type scoreRequest struct {
	Player string `json:"player"` // "player1" | "player2"
	Delta  int    `json:"delta"`  // +1 | +2 | +3 | -1
}

type gameStateResponse struct {
	Version int          `json:"version"`
	Game    *models.Game `json:"game"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.CourtID == "" || req.GameType == "" {
		writeError(w, http.StatusBadRequest, "court_id and game_type are required")
		return
	}
	scheduled, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid scheduled_date")
		return
	}

	g := &models.Game{
		ID:            uuid.NewString(),
		Player1ID:     currentUser(r).ID,
		Player2ID:     req.Player2ID,
		Team1ID:       req.Team1ID,
		Team2ID:       req.Team2ID,
		CourtID:       req.CourtID,
		TournamentID:  req.TournamentID,
		ChallengeID:   req.ChallengeID,
		ScheduledDate: scheduled.UTC(),
		GameType:      req.GameType,
		Status:        status.Initial(status.KindGame),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.CreateGame(r.Context(), g); err != nil {
		s.log.Error("create game", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.GamesByUser(r.Context(), currentUser(r).ID)
	if err != nil {
		s.log.Error("list games", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// handleUpdateScore routes the delta through the game's lobby so that
// concurrent taps from courtside devices and this endpoint apply in one
// serial order.
func (s *Server) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	slot, ok := parseSlot(req.Player)
	if !ok {
		writeError(w, http.StatusBadRequest, "player must be player1 or player2")
		return
	}

	g, err := s.store.GameByID(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("get game", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	if g.Status == status.Completed || g.Status == status.Cancelled {
		writeError(w, http.StatusBadRequest, "game is over")
		return
	}

	lb := s.liveLobby(g)
	s.applyCommand(w, r, g.ID, lb, engine.Command{Type: engine.CmdScoreDelta, Slot: slot, Delta: req.Delta})
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.GameByID(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("get game", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	if g.Status == status.Completed || g.Status == status.Cancelled {
		writeError(w, http.StatusBadRequest, "game is over")
		return
	}

	lb := s.liveLobby(g)
	s.applyCommand(w, r, g.ID, lb, engine.Command{Type: engine.CmdEndGame})
	s.hub.Inbox() <- hub.RemoveLobby{GameID: g.ID}
}

// liveLobby returns the game's lobby, starting one seeded from the stored
// score if the game is not live yet.
func (s *Server) liveLobby(g *models.Game) *lobby.Lobby {
	st := engine.NewState(g.ID, g.Player1ID, g.Player2ID, g.GameType)
	st.Score[engine.Player1] = g.Score.Player1
	st.Score[engine.Player2] = g.Score.Player2

	reply := make(chan *lobby.Lobby, 1)
	s.hub.Inbox() <- hub.EnsureLobby{GameID: g.ID, State: st, Persist: s.gamePersist(g.ID), Reply: reply}
	return <-reply
}

func (s *Server) applyCommand(w http.ResponseWriter, r *http.Request, gameID string, lb *lobby.Lobby, cmd engine.Command) {
	errCh := make(chan error, 1)
	lb.Inbox() <- lobby.FromClient{Cmd: cmd, Err: errCh}
	if err := <-errCh; err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The lobby processes messages in order, so by the time GetState
	// answers, the accepted command has been persisted.
	reply := make(chan lobby.View, 1)
	lb.Inbox() <- lobby.GetState{Reply: reply}
	view := <-reply

	g, err := s.store.GameByID(r.Context(), gameID)
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("reload game", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, gameStateResponse{Version: view.Version, Game: g})
}

// gamePersist mirrors each accepted lobby command into the game row.
// It runs on the lobby goroutine, so it is the only writer for a live game.
func (s *Server) gamePersist(gameID string) lobby.Persist {
	return func(ctx context.Context, st engine.State, version int) {
		g, err := s.store.GameByID(ctx, gameID)
		if err != nil {
			s.log.Error("persist live game: load", zap.String("game", gameID), zap.Error(err))
			return
		}
		score := models.Score{Player1: st.Score[engine.Player1], Player2: st.Score[engine.Player2]}
		if _, err := s.store.SaveGameState(ctx, gameID, score, st.Status, st.Winner, g.Version); err != nil {
			s.log.Error("persist live game: save", zap.String("game", gameID), zap.Error(err))
		}
	}
}

func parseSlot(player string) (engine.PlayerSlot, bool) {
	switch player {
	case "player1":
		return engine.Player1, true
	case "player2":
		return engine.Player2, true
	default:
		return "", false
	}
}
