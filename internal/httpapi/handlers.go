package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
	"github.com/DoyleJ11/innings-scorer/internal/hub"
	"github.com/DoyleJ11/innings-scorer/internal/lobby"
	"github.com/DoyleJ11/innings-scorer/internal/types"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type handlers struct {
	hub     *hub.Hub
	openers engine.Lineup
	log     *zap.Logger
}

func (a *handlers) createInnings(w http.ResponseWriter, r *http.Request) {
	var req types.CreateInningsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	openers := a.openers
	if req.OpenerA != "" {
		openers.A = req.OpenerA
	}
	if req.OpenerB != "" {
		openers.B = req.OpenerB
	}

	var code string
	for {
		c, err := GenerateCode()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate code")
			return
		}
		if a.hub.Lookup(r.Context(), c) == nil {
			code = c
			break
		}
		a.log.Debug("collision on code, regenerating", zap.String("code", c))
	}

	reply := make(chan *lobby.Lobby, 1)
	a.hub.Inbox() <- hub.EnsureLobby{Code: code, State: engine.NewState(openers), Reply: reply}
	if <-reply == nil {
		writeError(w, http.StatusInternalServerError, "failed to create innings")
		return
	}

	writeJSON(w, http.StatusCreated, types.CreateInningsResponse{Code: code})
}

func (a *handlers) getInnings(w http.ResponseWriter, r *http.Request) {
	lb := a.lookup(w, r)
	if lb == nil {
		return
	}
	view, err := lb.View(r.Context())
	if err != nil {
		writeError(w, http.StatusNotFound, "innings not found")
		return
	}
	writeJSON(w, http.StatusOK, types.ServerMessage{Type: "StateSnapshot", Version: view.Version, State: &view.State})
}

func (a *handlers) postAction(w http.ResponseWriter, r *http.Request) {
	lb := a.lookup(w, r)
	if lb == nil {
		return
	}

	var req types.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	cmd, err := engine.ParseAction(req.Action, string(req.Value))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := lb.Apply(r.Context(), cmd, req.Batter)
	if err != nil {
		writeError(w, http.StatusNotFound, "innings not found")
		return
	}
	if res.Err != nil {
		status := http.StatusBadRequest
		if errors.Is(res.Err, engine.ErrInningsOver) {
			status = http.StatusConflict
		}
		writeJSON(w, status, types.ServerMessage{Type: "Error", Version: res.Version, State: &res.State, Error: res.Err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, types.ServerMessage{Type: "StateSnapshot", Version: res.Version, State: &res.State, Events: res.Events})
}

func (a *handlers) deleteInnings(w http.ResponseWriter, r *http.Request) {
	if lb := a.lookup(w, r); lb == nil {
		return
	}
	a.hub.Inbox() <- hub.RemoveLobby{Code: chi.URLParam(r, "code")}
	w.WriteHeader(http.StatusNoContent)
}

func (a *handlers) lookup(w http.ResponseWriter, r *http.Request) *lobby.Lobby {
	lb := a.hub.Lookup(r.Context(), chi.URLParam(r, "code"))
	if lb == nil {
		writeError(w, http.StatusNotFound, "innings not found")
	}
	return lb
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ServerMessage{Type: "Error", Error: msg})
}
