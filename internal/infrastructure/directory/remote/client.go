// Package remote implements the identity directory against the Rently
// identity service HTTP API. The service is the system of record and the id
// authority; this client only lists and creates users.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rently/rently-client/internal/core/domain"
	"github.com/rently/rently-client/internal/metrics"
)

const (
	listPath   = "/api/users/"
	createPath = "/api/users/create/"

	defaultTimeout = 10 * time.Second
)

// Client talks to the identity service. Transport-level failures (network,
// non-2xx, malformed bodies) are logged with their real cause and surfaced
// to callers as domain.ErrTransport with a generic retry message.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient returns a Client for the service at baseURL. A trailing slash on
// the base URL is normalized away.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

// wireUser is the service's user representation. Ids may be numbers or
// strings depending on the service revision, so they decode as json.Number.
type wireUser struct {
	ID       json.Number `json:"id"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     string      `json:"role"`
}

// List fetches the full user set from GET /api/users/.
func (c *Client) List(ctx context.Context) ([]domain.Identity, error) {
	identities, err := c.list(ctx)
	metrics.DirectoryRequestsTotal.WithLabelValues("remote", requestOutcome(err)).Inc()
	return identities, err
}

func (c *Client) list(ctx context.Context) ([]domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+listPath, nil)
	if err != nil {
		return nil, c.transportErr("building list request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportErr("listing users", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.transportErr("listing users", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var users []wireUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, c.transportErr("decoding user list", err)
	}

	identities := make([]domain.Identity, 0, len(users))
	for _, u := range users {
		role, ok := roleFromWire(u.Role)
		if !ok {
			c.log.Warn().Str("role", u.Role).Str("id", u.ID.String()).
				Msg("skipping user with unknown wire role")
			continue
		}
		identities = append(identities, domain.Identity{
			ID:     u.ID.String(),
			Name:   u.Name,
			Role:   role,
			Secret: domain.PlainSecret(u.Password),
		})
	}
	return identities, nil
}

// Create submits a new user to POST /api/users/create/ and re-lists to
// resolve the id the service assigned.
func (c *Client) Create(ctx context.Context, n domain.NewIdentity) (*domain.Identity, error) {
	identity, err := c.create(ctx, n)
	metrics.DirectoryRequestsTotal.WithLabelValues("remote", requestOutcome(err)).Inc()
	return identity, err
}

func (c *Client) create(ctx context.Context, n domain.NewIdentity) (*domain.Identity, error) {
	body, err := json.Marshal(map[string]string{
		"name":     n.Name,
		"password": n.Password,
		"role":     roleToWire(n.Role),
	})
	if err != nil {
		return nil, c.transportErr("encoding create request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createPath, bytes.NewReader(body))
	if err != nil {
		return nil, c.transportErr("building create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportErr("creating user", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if detail := readDetail(resp.Body); detail != "" &&
			(resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusConflict) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConflict, detail)
		}
		return nil, c.transportErr("creating user", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	// The service assigns the id; re-list to pick it up.
	identities, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range identities {
		if identities[i].Role == n.Role && identities[i].NameMatches(n.Name) {
			return &identities[i], nil
		}
	}
	return nil, c.transportErr("resolving created user", fmt.Errorf("user %q missing from listing", n.Name))
}

// readDetail extracts the {"detail": "..."} failure message, if any.
func readDetail(r io.Reader) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Detail)
}

func (c *Client) transportErr(op string, cause error) error {
	c.log.Error().Err(cause).Str("op", op).Msg("identity service request failed")
	return domain.ErrTransport
}

func requestOutcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
