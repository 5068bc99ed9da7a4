// Package cookie broadcasts the session identity as a serialized HTTP
// cookie for consumers outside this process (e.g. a server-rendered shell
// reading the client's cookie file). The mirror is write-only: nothing in
// this module ever reads it back.
package cookie

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/rently/rently-client/internal/core/domain"
)

const (
	// Name is the cookie name shared with external consumers.
	Name = "current_session"
	// maxAge is seven days, in seconds.
	maxAge     = 604800
	cookieFile = "session_cookie"
)

// Mirror writes the session cookie line to <dir>/session_cookie.
type Mirror struct {
	dir string
	log zerolog.Logger
}

// NewMirror returns a Mirror rooted at dir. An empty dir disables the
// mirror; writes become no-ops.
func NewMirror(dir string, log zerolog.Logger) *Mirror {
	return &Mirror{dir: dir, log: log}
}

// payload is the reduced projection carried by the cookie. The credential
// must never appear here.
type payload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Set writes the cookie with the identity projection, URL-encoded, valid
// for seven days.
func (m *Mirror) Set(identity *domain.Identity) error {
	data, err := json.Marshal(payload{
		ID:   identity.ID,
		Name: identity.Name,
		Role: string(identity.Role),
	})
	if err != nil {
		return err
	}
	c := &http.Cookie{
		Name:   Name,
		Value:  url.QueryEscape(string(data)),
		Path:   "/",
		MaxAge: maxAge,
	}
	return m.write(c)
}

// Expire writes the same cookie name with Max-Age=0 so consumers drop it.
func (m *Mirror) Expire() error {
	// http.Cookie serializes a negative MaxAge as "Max-Age=0".
	c := &http.Cookie{
		Name:   Name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}
	return m.write(c)
}

func (m *Mirror) write(c *http.Cookie) error {
	if m.dir == "" {
		m.log.Debug().Msg("no state directory, skipping cookie mirror")
		return nil
	}
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.dir, cookieFile), []byte(c.String()+"\n"), 0o600)
}
