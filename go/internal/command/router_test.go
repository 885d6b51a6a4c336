package command

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

type fakeSessions map[string]models.User

func (f fakeSessions) Resolve(id string) (*models.User, bool) {
	u, ok := f[id]
	if !ok {
		return nil, false
	}
	return &u, true
}

type fakeAuthz map[string]bool

func (f fakeAuthz) Authorize(_ models.User, cmd string) error {
	if f[cmd] {
		return nil
	}
	return apperrors.New(apperrors.CodeForbidden, "Forbidden: You don't have permission to perform this action")
}

func setupTestRouter() *Router {
	sessions := fakeSessions{"s-1": {ID: "u-1", Username: "scout"}}
	authz := fakeAuthz{"ECHO": true, "FAIL": true, "BOOM": true, "PANIC": true}
	r := NewRouter(sessions, authz)

	r.HandlePublic("PING", func(context.Context, *Call) (*Result, error) {
		return OK("pong", nil), nil
	})
	r.Handle("ECHO", func(_ context.Context, call *Call) (*Result, error) {
		return OK("echo", map[string]string{"user": call.User.Username}), nil
	})
	r.Handle("SECRET", func(context.Context, *Call) (*Result, error) {
		return OK("secret", nil), nil
	})
	r.Handle("FAIL", func(context.Context, *Call) (*Result, error) {
		return nil, apperrors.NotFound("Club")
	})
	r.Handle("BOOM", func(context.Context, *Call) (*Result, error) {
		return nil, errors.New("disk on fire")
	})
	r.Handle("PANIC", func(context.Context, *Call) (*Result, error) {
		panic("unexpected")
	})
	return r
}

func TestDispatch_PublicCommandNeedsNoSession(t *testing.T) {
	r := setupTestRouter()

	resp := r.Dispatch(context.Background(), Request{Command: "PING"})
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, "pong", resp.Message)
	assert.Equal(t, "PING", resp.Command)
}

func TestDispatch_RequiresSession(t *testing.T) {
	r := setupTestRouter()

	for _, sid := range []string{"", "s-unknown"} {
		resp := r.Dispatch(context.Background(), Request{Command: "ECHO", SessionID: sid})
		assert.Equal(t, StatusError, resp.Status)
		assert.Equal(t, apperrors.CodeUnauthorized, resp.Code)
		assert.Equal(t, "Unauthorized: Please login first", resp.Message)
	}
}

func TestDispatch_PassesUserToHandler(t *testing.T) {
	r := setupTestRouter()

	resp := r.Dispatch(context.Background(), Request{Command: "ECHO", SessionID: "s-1"})
	require.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, map[string]string{"user": "scout"}, resp.Data)
}

func TestDispatch_Forbidden(t *testing.T) {
	r := setupTestRouter()

	resp := r.Dispatch(context.Background(), Request{Command: "SECRET", SessionID: "s-1"})
	assert.Equal(t, apperrors.CodeForbidden, resp.Code)
	assert.Equal(t, "SECRET", resp.Command)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	r := setupTestRouter()

	resp := r.Dispatch(context.Background(), Request{Command: "NOPE", SessionID: "s-1"})
	assert.Equal(t, apperrors.CodeInvalidCommand, resp.Code)
	assert.Equal(t, "Invalid command", resp.Message)

	resp = r.Dispatch(context.Background(), Request{Command: "NOPE"})
	assert.Equal(t, apperrors.CodeUnauthorized, resp.Code, "session is checked first")
}

func TestDispatch_DomainErrorsKeepTheirMessage(t *testing.T) {
	r := setupTestRouter()

	resp := r.Dispatch(context.Background(), Request{Command: "FAIL", SessionID: "s-1"})
	assert.Equal(t, apperrors.CodeNotFound, resp.Code)
	assert.Equal(t, "Club not found", resp.Message)
}

func TestDispatch_UnexpectedErrorsAreMasked(t *testing.T) {
	r := setupTestRouter()

	for _, cmd := range []string{"BOOM", "PANIC"} {
		resp := r.Dispatch(context.Background(), Request{Command: cmd, SessionID: "s-1"})
		assert.Equal(t, StatusError, resp.Status, cmd)
		assert.Equal(t, apperrors.CodeInternal, resp.Code, cmd)
		assert.Equal(t, "Internal server error", resp.Message, cmd)
		assert.Equal(t, cmd, resp.Command)
	}
}

func TestDispatch_EchoesCorrelationFields(t *testing.T) {
	r := setupTestRouter()

	req, err := DecodeRequest([]byte(`{"command":"PING","client_id":{"n":7},"timestamp":"2024-01-01T00:00:00Z"}`))
	require.NoError(t, err)

	resp := r.Dispatch(context.Background(), req)
	out, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"status":"success","message":"pong","command":"PING",
		"client_id":{"n":7},"timestamp":"2024-01-01T00:00:00Z"
	}`, string(out))
}

func TestDispatch_AbsentCorrelationFieldsEncodeAsNull(t *testing.T) {
	r := setupTestRouter()

	out, err := json.Marshal(r.Dispatch(context.Background(), Request{Command: "PING"}))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"client_id":null`)
	assert.Contains(t, string(out), `"timestamp":null`)
}

func TestHandle_DuplicateRegistrationPanics(t *testing.T) {
	r := setupTestRouter()
	assert.Panics(t, func() {
		r.Handle("ECHO", func(context.Context, *Call) (*Result, error) { return nil, nil })
	})
}

func TestCommands_Sorted(t *testing.T) {
	r := setupTestRouter()
	assert.Equal(t, []string{"BOOM", "ECHO", "FAIL", "PANIC", "PING", "SECRET"}, r.Commands())
}

func TestDecodeRequest_InvalidJSON(t *testing.T) {
	_, err := DecodeRequest([]byte(`{"command":`))
	require.Error(t, err)

	resp := ProtocolErrorResponse(err)
	assert.Equal(t, UnknownCommand, resp.Command)
	assert.Equal(t, apperrors.CodeProtocol, resp.Code)
	assert.Contains(t, resp.Message, "Invalid JSON format: ")
}

func TestDecodeStrict(t *testing.T) {
	type patch struct {
		Name *string `json:"name"`
	}

	var p patch
	require.NoError(t, DecodeStrict("UPDATE_X", json.RawMessage(`{"name":"n"}`), &p))
	require.NotNil(t, p.Name)
	assert.Equal(t, "n", *p.Name)

	err := DecodeStrict("UPDATE_X", json.RawMessage(`{"id":"other"}`), &patch{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "Field id cannot be updated by UPDATE_X")

	err = DecodeStrict("UPDATE_X", json.RawMessage(`{"name":5}`), &patch{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestIsEmptyObject(t *testing.T) {
	assert.True(t, IsEmptyObject(nil))
	assert.True(t, IsEmptyObject(json.RawMessage(`null`)))
	assert.True(t, IsEmptyObject(json.RawMessage(` {} `)))
	assert.False(t, IsEmptyObject(json.RawMessage(`{"a":1}`)))
}
