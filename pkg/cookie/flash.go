package cookie

import (
	"encoding/json"
	"errors"
	"net/http"
)

const flashCookie = "flash"

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SetFlash stores f in an encrypted session cookie.
func (m *Manager) SetFlash(w http.ResponseWriter, f Flash) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return m.SetEncrypted(w, flashCookie, string(data), 0)
}

// PopFlash reads the pending flash and clears it.
// Returns ErrNotFound when there is none.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) (Flash, error) {
	var f Flash
	raw, err := m.GetEncrypted(r, flashCookie)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoSecret) {
		return f, err
	}
	m.Clear(w, flashCookie)
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return f, errors.Join(ErrDecrypt, err)
	}
	return f, nil
}
