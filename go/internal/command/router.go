package command

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

const internalErrorMessage = "Internal server error"

// SessionResolver resolves a session id to its user, refreshing the session.
type SessionResolver interface {
	Resolve(sessionID string) (*models.User, bool)
}

// Authorizer decides whether a user may run a command. Commands it does not
// know must be denied.
type Authorizer interface {
	Authorize(user models.User, command string) error
}

// Call is the input handed to a handler.
type Call struct {
	Command   string
	Data      json.RawMessage
	SessionID string
	// User is nil for public commands.
	User *models.User
}

// Result is a handler's successful outcome.
type Result struct {
	Message   string
	Data      any
	SessionID string
}

// OK builds a success result.
func OK(message string, data any) *Result {
	return &Result{Message: message, Data: data}
}

// HandlerFunc executes one command.
type HandlerFunc func(ctx context.Context, call *Call) (*Result, error)

// Registrar is implemented by every domain service that exposes commands.
type Registrar interface {
	Register(r *Router)
}

type route struct {
	handler HandlerFunc
	public  bool
}

// Router maps command names to handlers and gates them on session and
// permission.
type Router struct {
	sessions SessionResolver
	authz    Authorizer

	mu     sync.RWMutex
	routes map[string]route
}

// NewRouter creates a router using the given session and permission policy.
func NewRouter(sessions SessionResolver, authz Authorizer) *Router {
	return &Router{
		sessions: sessions,
		authz:    authz,
		routes:   make(map[string]route),
	}
}

// Handle binds a command that requires a session and authorization.
func (r *Router) Handle(cmd string, h HandlerFunc) {
	r.add(cmd, route{handler: h})
}

// HandlePublic binds a command that runs without a session.
func (r *Router) HandlePublic(cmd string, h HandlerFunc) {
	r.add(cmd, route{handler: h, public: true})
}

func (r *Router) add(cmd string, rt route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.routes[cmd]; exists {
		panic(fmt.Sprintf("command %s registered twice", cmd))
	}
	r.routes[cmd] = rt
}

// Commands returns the registered command names, sorted.
func (r *Router) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs one request through the auth gate and its handler and always
// returns a response envelope. Correlation fields are echoed from req.
func (r *Router) Dispatch(ctx context.Context, req Request) (resp Response) {
	cmd := req.Command
	logger := loggerFrom(ctx)

	defer func() {
		if p := recover(); p != nil {
			logger.Error().
				Str("command", cmd).
				Interface("panic", p).
				Msg("handler panicked")
			resp = ErrorResponse(cmd, apperrors.CodeInternal, internalErrorMessage).Echo(req)
		}
	}()

	result, err := r.dispatch(ctx, req)
	if err != nil {
		return r.errorResponse(logger, cmd, err).Echo(req)
	}

	return Response{
		Status:    StatusSuccess,
		Message:   result.Message,
		Command:   cmd,
		Data:      result.Data,
		SessionID: result.SessionID,
	}.Echo(req)
}

func (r *Router) dispatch(ctx context.Context, req Request) (*Result, error) {
	r.mu.RLock()
	rt, known := r.routes[req.Command]
	r.mu.RUnlock()

	call := &Call{
		Command:   req.Command,
		Data:      req.Data,
		SessionID: req.SessionID,
	}

	if known && rt.public {
		return rt.handler(ctx, call)
	}

	user, ok := r.sessions.Resolve(req.SessionID)
	if !ok {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "Unauthorized: Please login first")
	}
	if !known {
		return nil, apperrors.New(apperrors.CodeInvalidCommand, "Invalid command")
	}
	if err := r.authz.Authorize(*user, req.Command); err != nil {
		return nil, err
	}

	call.User = user
	return rt.handler(ctx, call)
}

func (r *Router) errorResponse(logger *zerolog.Logger, cmd string, err error) Response {
	if appErr, ok := apperrors.As(err); ok && appErr.Code != apperrors.CodeInternal {
		logger.Debug().
			Str("command", cmd).
			Str("code", string(appErr.Code)).
			Msg(appErr.Message)
		return ErrorResponse(cmd, appErr.Code, appErr.Message)
	}

	logger.Error().
		Err(err).
		Str("command", cmd).
		Msg("command failed")
	return ErrorResponse(cmd, apperrors.CodeInternal, internalErrorMessage)
}

// loggerFrom returns the request-scoped logger, falling back to the global one.
func loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
