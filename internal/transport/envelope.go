package transport

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
)

// Envelope is the wrapper every API response carries.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   any             `json:"error"`
	Success *bool           `json:"success"`
}

// Rejected reports whether the server explicitly flagged the call as failed
// despite a 2xx status.
func (e *Envelope) Rejected() bool {
	return e != nil && e.Success != nil && !*e.Success
}

// ErrorText returns the server error field as a string.
func (e *Envelope) ErrorText() string {
	if e == nil || e.Error == nil {
		return ""
	}
	switch v := e.Error.(type) {
	case string:
		return v
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return msg
		}
	}
	return fmt.Sprint(e.Error)
}

// HasData reports whether the payload is present and not JSON null.
func (e *Envelope) HasData() bool {
	return e != nil && len(e.Data) > 0 && string(e.Data) != "null"
}

// Decode unmarshals the payload into out. A missing payload leaves out untouched.
func (e *Envelope) Decode(out any) error {
	if !e.HasData() {
		return nil
	}
	if err := sonic.ConfigStd.Unmarshal(e.Data, out); err != nil {
		return apierrors.Decode(err)
	}
	return nil
}

func decodeEnvelope(body []byte) (*Envelope, error) {
	env := &Envelope{}
	if len(body) == 0 {
		return env, nil
	}
	if err := sonic.ConfigStd.Unmarshal(body, env); err != nil {
		return nil, err
	}
	return env, nil
}
