package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
	"github.com/DoyleJ11/innings-scorer/internal/hub"
	"github.com/DoyleJ11/innings-scorer/internal/lobby"
	"github.com/DoyleJ11/innings-scorer/internal/types"
)

type Options struct {
	// OutboxSize is the number of snapshots buffered per client before it is
	// treated as slow and dropped.
	OutboxSize     int
	OriginPatterns []string
	Logger         *zap.Logger
}

func Handler(h *hub.Hub, opts Options) http.HandlerFunc {
	if opts.OutboxSize <= 0 {
		opts.OutboxSize = 8
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		lb := h.Lookup(r.Context(), code)
		if lb == nil {
			http.Error(w, "innings not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan lobby.Snapshot, opts.OutboxSize)
		clientID := uuid.NewString()
		clog := log.With(zap.String("code", code), zap.String("client", clientID))

		if err := lb.Send(r.Context(), lobby.Join{ClientID: clientID, Outbox: out}); err != nil {
			return
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = lb.Send(ctx, lobby.Leave{ClientID: clientID})
		}()
		clog.Debug("websocket connected")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				state := snap.State
				msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, State: &state, Events: snap.Events}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				err := conn.Write(ctx, websocket.MessageText, payload)
				cancel()
				if err != nil {
					return
				}
			}
			// outbox closed: lobby shut down or dropped us as slow
			conn.Close(websocket.StatusGoingAway, "innings closed")
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					clog.Debug("websocket closed")
				default:
					clog.Debug("websocket read failed", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, err := toEngineCommand(cm)
			if err != nil {
				writeError(r.Context(), conn, err.Error())
				continue
			}

			res, err := lb.Apply(r.Context(), cmd, cm.Batter)
			if err != nil {
				return
			}
			if res.Err != nil {
				writeError(r.Context(), conn, res.Err.Error())
			}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: msg})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func toEngineCommand(m types.ClientMessage) (engine.Command, error) {
	switch m.Type {
	case "Action", "":
		return engine.ParseAction(m.Action, string(m.Value))
	default:
		return engine.Command{}, engine.ErrUnsupportedCommand
	}
}
