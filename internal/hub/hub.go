package hub

import (
	"context"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/engine"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/lobby"
)

type HubMsg interface{ isHubMsg() }

type GetLobby struct {
	GameID string
	Reply  chan *lobby.Lobby
}

// EnsureLobby creates the lobby for a game if it is not live yet.
// State and Persist are only used if creation happens.
type EnsureLobby struct {
	GameID  string
	State   engine.State
	Persist lobby.Persist
	Reply   chan *lobby.Lobby
}

type RemoveLobby struct {
	GameID string
}

type ShutdownHub struct{}

func (GetLobby) isHubMsg()    {}
func (EnsureLobby) isHubMsg() {}
func (RemoveLobby) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox   chan HubMsg
	lobbies map[string]*lobby.Lobby
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewHub(parent context.Context) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		lobbies: make(map[string]*lobby.Lobby),
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case GetLobby:
				msg.Reply <- h.lobbies[msg.GameID] // May be nil

			case EnsureLobby:
				if lb := h.lobbies[msg.GameID]; lb != nil {
					msg.Reply <- lb
					break
				}

				lb := lobby.NewLobby(h.ctx, msg.State, msg.Persist)
				h.lobbies[msg.GameID] = lb
				msg.Reply <- lb

			case RemoveLobby:
				if lb := h.lobbies[msg.GameID]; lb != nil {
					lb.Inbox() <- lobby.Shutdown{}
				}
				delete(h.lobbies, msg.GameID)

			case ShutdownHub:
				for _, lb := range h.lobbies {
					lb.Inbox() <- lobby.Shutdown{}
				}
				clear(h.lobbies)
				h.cancel()
			}
		}
	}
}
