package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rently/rently-client/internal/core/domain"
)

func TestListMapsWireRoles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Cesar Tirado", "password": "abc123", "role": "LANDLORD"},
			{"id": 2, "name": "Sergio Rocha", "password": "zyx987", "role": "TENANT"}
		]`))
	}))
	defer srv.Close()

	// Trailing slash on the base URL is normalized away.
	client := NewClient(srv.URL+"/", zerolog.Nop())
	identities, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(identities) != 2 {
		t.Fatalf("expected 2 identities, got %d", len(identities))
	}
	if identities[0].ID != "1" || identities[0].Role != domain.RoleLandlord {
		t.Fatalf("unexpected first identity: %+v", identities[0])
	}
	if identities[1].Role != domain.RoleTenant {
		t.Fatalf("unexpected second identity: %+v", identities[1])
	}
	if !identities[0].Secret.Matches("abc123") {
		t.Fatalf("remote credential should compare exactly")
	}
}

func TestListSkipsUnknownRoles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Cesar", "password": "x", "role": "ADMIN"},
			{"id": 2, "name": "Sergio", "password": "y", "role": "TENANT"}
		]`))
	}))
	defer srv.Close()

	identities, err := NewClient(srv.URL, zerolog.Nop()).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(identities) != 1 || identities[0].Name != "Sergio" {
		t.Fatalf("expected only the tenant record, got %+v", identities)
	}
}

func TestListTransportFailures(t *testing.T) {
	// Non-2xx response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	if _, err := NewClient(srv.URL, zerolog.Nop()).List(context.Background()); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport for non-2xx, got %v", err)
	}
	srv.Close()

	// Non-array body.
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"detail": "nope"}`))
	}))
	if _, err := NewClient(srv.URL, zerolog.Nop()).List(context.Background()); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport for malformed body, got %v", err)
	}
	srv.Close()

	// Server unreachable.
	if _, err := NewClient(srv.URL, zerolog.Nop()).List(context.Background()); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport for unreachable service, got %v", err)
	}
}

func TestCreateResolvesAssignedID(t *testing.T) {
	var created bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/create/":
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decoding create body: %v", err)
			}
			if body["role"] != "LANDLORD" {
				t.Errorf("expected wire role LANDLORD, got %q", body["role"])
			}
			if body["name"] != "Maria Lopez" || body["password"] != "hunter2" {
				t.Errorf("unexpected create body: %v", body)
			}
			created = true
			w.WriteHeader(http.StatusCreated)
		case "/api/users/":
			users := `[{"id": 1, "name": "Cesar Tirado", "password": "x", "role": "TENANT"}]`
			if created {
				users = `[
					{"id": 1, "name": "Cesar Tirado", "password": "x", "role": "TENANT"},
					{"id": 7, "name": "Maria Lopez", "password": "hunter2", "role": "LANDLORD"}
				]`
			}
			_, _ = w.Write([]byte(users))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	identity, err := NewClient(srv.URL, zerolog.Nop()).Create(context.Background(), domain.NewIdentity{
		Name:     "Maria Lopez",
		Password: "hunter2",
		Role:     domain.RoleLandlord,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if identity.ID != "7" {
		t.Fatalf("expected the service-assigned id, got %q", identity.ID)
	}
}

func TestCreateConflictCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "user already registered"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, zerolog.Nop()).Create(context.Background(), domain.NewIdentity{
		Name:     "Maria Lopez",
		Password: "hunter2",
		Role:     domain.RoleLandlord,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "user already registered") {
		t.Fatalf("expected the service detail in the message, got %q", got)
	}
}

func TestCreateServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, zerolog.Nop()).Create(context.Background(), domain.NewIdentity{
		Name:     "Maria Lopez",
		Password: "hunter2",
		Role:     domain.RoleLandlord,
	})
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}
