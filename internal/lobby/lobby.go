package lobby

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
)

var ErrClosed = errors.New("lobby closed")

type Msg interface{ isLobbyMsg() }

// FromClient carries one delivery. Batter, when set, names the incoming
// batter if the delivery is a wicket. Reply is optional.
type FromClient struct {
	Cmd    engine.Command
	Batter string
	Reply  chan Result
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

// Snapshot is what every client receives after an accepted delivery.
type Snapshot struct {
	Version int
	State   engine.Snapshot
	Events  []engine.Event
}

type View struct {
	Version    int
	NumClients int
	State      engine.Snapshot
}

// Result answers a FromClient that asked for one. Err is set when the engine
// rejected the command; Snapshot is then the unchanged current state.
type Result struct {
	Snapshot
	Err error
}

type Lobby struct {
	inbox   chan Msg
	innings *engine.Innings
	version int
	clients map[string]chan Snapshot
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewLobby(parent context.Context, initial engine.State, log *zap.Logger) *Lobby {
	ctx, cancel := context.WithCancel(parent)
	if log == nil {
		log = zap.NewNop()
	}

	l := &Lobby{
		inbox:   make(chan Msg, 64), // Small buffer
		innings: engine.ResumeInnings(initial, nil),
		version: 0,
		clients: make(map[string]chan Snapshot),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go l.loop()
	return l
}

func (l *Lobby) loop() {
	defer close(l.done)
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
				msg.Outbox <- Snapshot{Version: l.version, State: l.innings.Snapshot()}
				l.log.Debug("client joined", zap.String("client", msg.ClientID), zap.Int("clients", len(l.clients)))

			case Leave:
				if _, ok := l.clients[msg.ClientID]; ok {
					delete(l.clients, msg.ClientID)
					l.log.Debug("client left", zap.String("client", msg.ClientID))
				}

			case FromClient:
				l.handleCommand(msg)

			case GetState:
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					State:      l.innings.Snapshot(),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) handleCommand(msg FromClient) {
	var names engine.NameProvider
	if msg.Batter != "" {
		names = engine.FixedName(msg.Batter)
	}

	snap, events, err := l.innings.DispatchWith(msg.Cmd, names)
	if err != nil {
		l.log.Debug("command rejected",
			zap.String("type", string(msg.Cmd.Type)),
			zap.Error(err),
		)
		reply(msg.Reply, Result{Snapshot: Snapshot{Version: l.version, State: snap}, Err: err})
		return
	}

	l.version++
	out := Snapshot{Version: l.version, State: snap, Events: events}
	l.log.Debug("command applied",
		zap.String("type", string(msg.Cmd.Type)),
		zap.Int("version", l.version),
		zap.Int("total", snap.TotalRuns),
		zap.Int("wickets", snap.Wickets),
		zap.String("overs", snap.Overs),
	)
	if engine.ContainsEvent(events, engine.EvtInningsOver) {
		l.log.Info("innings over", zap.Int("total", snap.TotalRuns), zap.String("overs", snap.Overs))
	}
	l.broadcast(out)
	reply(msg.Reply, Result{Snapshot: out})
}

func reply(ch chan Result, r Result) {
	if ch == nil {
		return
	}
	select {
	case ch <- r:
	default:
		// caller stopped listening
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
			l.log.Info("dropped slow client", zap.String("client", id))
		}
	}
}

// Expose the inbox so tests or WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Send delivers m unless the lobby has shut down or ctx ends first.
func (l *Lobby) Send(ctx context.Context, m Msg) error {
	select {
	case l.inbox <- m:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Apply sends one delivery and waits for the lobby's answer.
func (l *Lobby) Apply(ctx context.Context, cmd engine.Command, batter string) (Result, error) {
	replyCh := make(chan Result, 1)
	if err := l.Send(ctx, FromClient{Cmd: cmd, Batter: batter, Reply: replyCh}); err != nil {
		return Result{}, err
	}
	select {
	case r := <-replyCh:
		return r, nil
	case <-l.done:
		select {
		case r := <-replyCh:
			return r, nil
		default:
			return Result{}, ErrClosed
		}
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// View asks the lobby for its current state.
func (l *Lobby) View(ctx context.Context) (View, error) {
	replyCh := make(chan View, 1)
	if err := l.Send(ctx, GetState{Reply: replyCh}); err != nil {
		return View{}, err
	}
	select {
	case v := <-replyCh:
		return v, nil
	case <-l.done:
		select {
		case v := <-replyCh:
			return v, nil
		default:
			return View{}, ErrClosed
		}
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// Done is closed once the lobby goroutine has exited.
func (l *Lobby) Done() <-chan struct{} { return l.done }
