// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/storage"
)

// SessionID is the session every router built by NewRouter accepts.
const SessionID = "test-session"

type adminSession struct{}

func (adminSession) Resolve(id string) (*models.User, bool) {
	if id != SessionID {
		return nil, false
	}
	return &models.User{ID: "admin-id", Username: "admin", Role: models.RoleAdmin}, true
}

func (adminSession) Authorize(models.User, string) error { return nil }

// NewStore opens a store in a fresh temp dir.
func NewStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	return store
}

// NewRouter returns a router with the given services registered that treats
// SessionID as an admin session.
func NewRouter(services ...command.Registrar) *command.Router {
	r := command.NewRouter(adminSession{}, adminSession{})
	for _, s := range services {
		s.Register(r)
	}
	return r
}

// Call dispatches cmd with data as the admin session.
func Call(t *testing.T, r *command.Router, cmd string, data any) command.Response {
	t.Helper()
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		require.NoError(t, err)
		raw = b
	}
	return r.Dispatch(context.Background(), command.Request{
		Command:   cmd,
		Data:      raw,
		SessionID: SessionID,
	})
}

// DecodeData round-trips a response payload into out.
func DecodeData(t *testing.T, resp command.Response, out any) {
	t.Helper()
	require.Equal(t, command.StatusSuccess, resp.Status, resp.Message)
	b, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}
