package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
)

// Payload is an action's optional argument. Clients may send it as a JSON
// number (4) or a string ("4"); both decode to the same text.
type Payload string

func (p *Payload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Payload(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value must be a number or a string: %w", err)
	}
	*p = Payload(n)
	return nil
}

// ClientMessage is a delivery sent by a scorer's UI. Value carries the run
// count for "run"; Batter names the incoming batter on a wicket.
type ClientMessage struct {
	Type   string  `json:"type"` // "Action"
	Action string  `json:"action,omitempty"`
	Value  Payload `json:"value,omitempty"`
	Batter string  `json:"batter,omitempty"`
}

type ServerMessage struct {
	Type    string           `json:"type"` // "StateSnapshot" | "Error"
	Version int              `json:"version,omitempty"`
	State   *engine.Snapshot `json:"state,omitempty"`
	Events  []engine.Event   `json:"events,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type CreateInningsRequest struct {
	OpenerA string `json:"opener_a,omitempty"`
	OpenerB string `json:"opener_b,omitempty"`
}

type CreateInningsResponse struct {
	Code string `json:"code"`
}

type ActionRequest struct {
	Action string  `json:"action"`
	Value  Payload `json:"value,omitempty"`
	Batter string  `json:"batter,omitempty"`
}
