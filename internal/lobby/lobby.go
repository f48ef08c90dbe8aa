package lobby

import (
	"context"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/engine"
)

type Msg interface{ isLobbyMsg() }

// FromClient carries a scoring command. Err is optional; when buffered the
// apply result is sent back so REST callers can surface rejections.
type FromClient struct {
	Cmd engine.Command
	Err chan error
}

func (FromClient) isLobbyMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

// Snapshot is what subscribers see after every accepted command. Version
// is monotonic per lobby: it is the sequencing discipline that makes two
// rapid score taps resolve in a defined order.
type Snapshot struct {
	Version int
	State   engine.State
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
}

// Persist receives the state after every accepted command so the game row
// can follow the live score. Called from the lobby goroutine; must not
// send back into the lobby.
type Persist func(ctx context.Context, state engine.State, version int)

type Lobby struct {
	inbox   chan Msg
	state   engine.State
	version int
	clients map[string]chan Snapshot
	persist Persist
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewLobby(parent context.Context, initial engine.State, persist Persist) *Lobby {
	ctx, cancel := context.WithCancel(parent)

	l := &Lobby{
		inbox:   make(chan Msg, 64),
		state:   initial,
		version: 0,
		clients: make(map[string]chan Snapshot),
		persist: persist,
		ctx:     ctx,
		cancel:  cancel,
	}

	go l.loop()
	return l
}

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				l.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: l.version, State: l.state}

			case Leave:
				// Close the outbox so the client's writer goroutine ends;
				// same shape as the slow-client drop in broadcast.
				if ch, ok := l.clients[msg.ClientID]; ok {
					close(ch)
					delete(l.clients, msg.ClientID)
				}

			case FromClient:
				_, newState, err := engine.Apply(l.state, msg.Cmd)
				if msg.Err != nil {
					select {
					case msg.Err <- err:
					default:
					}
				}
				if err != nil {
					break
				}
				l.state = newState
				l.version++
				if l.persist != nil {
					l.persist(l.ctx, l.state, l.version)
				}
				l.broadcast(Snapshot{Version: l.version, State: l.state})

			case GetState:
				// reflect internal state without data races
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					State:      l.state,
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch) // Tell client no more snapshots
		delete(l.clients, id)
	}
	l.cancel()
}

func (l *Lobby) broadcast(snap Snapshot) {
	for id, ch := range l.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(l.clients, id)
		}
	}
}

// Expose the inbox so the WS layer, REST handlers and tests can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }
