package gateway

import (
	"encoding/json"

	xerrors "github.com/stoneridge/go-marketplace-client/internal/errors"
)

// Envelope is the API's optional response wrapper. Endpoints return
// either the payload directly or wrapped as {"data": payload}; the
// gateway unwraps exactly once so no caller ever re-derives it.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// decodeBody decodes a response body into out, unwrapping the envelope
// when present.
func decodeBody(body []byte, out any) error {
	if len(body) == 0 {
		return nil
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil && payloadPresent(env.Data) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return xerrors.Wrapf(xerrors.ErrDecode, "envelope payload: %s", err.Error())
		}
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return xerrors.Wrapf(xerrors.ErrDecode, "bare payload: %s", err.Error())
	}
	return nil
}

// serverMessage pulls the message field out of an error body, tolerant
// of bodies that are not envelopes at all.
func serverMessage(body []byte) string {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}

func payloadPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
