package command

import (
	"encoding/json"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
)

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// UnknownCommand is echoed when a request could not be decoded far enough to
// learn its command.
const UnknownCommand = "unknown"

// Request is one client message. ClientID and Timestamp are opaque and echoed
// back verbatim.
type Request struct {
	Command   string          `json:"command"`
	Data      json.RawMessage `json:"data,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
	ClientID  json.RawMessage `json:"client_id,omitempty"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
}

// Response is one server message.
type Response struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Command   string          `json:"command"`
	Code      apperrors.Code  `json:"code,omitempty"`
	Data      any             `json:"data,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
	ClientID  json.RawMessage `json:"client_id"`
	Timestamp json.RawMessage `json:"timestamp"`
}

// DecodeRequest parses a raw frame. Syntax errors come back as a protocol
// error carrying the parser detail.
func DecodeRequest(frame []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(frame, &req); err != nil {
		return Request{}, apperrors.Wrap(apperrors.CodeProtocol, "Invalid JSON format: "+err.Error(), err)
	}
	return req, nil
}

// ErrorResponse builds an error envelope from a domain error code and message.
func ErrorResponse(cmd string, code apperrors.Code, message string) Response {
	return Response{
		Status:  StatusError,
		Message: message,
		Command: cmd,
		Code:    code,
	}
}

// ProtocolErrorResponse answers a frame that could not be decoded.
func ProtocolErrorResponse(err error) Response {
	msg := "Invalid JSON format"
	if appErr, ok := apperrors.As(err); ok {
		msg = appErr.Message
	}
	return ErrorResponse(UnknownCommand, apperrors.CodeProtocol, msg)
}

// Echo copies the opaque correlation fields of req onto resp.
func (resp Response) Echo(req Request) Response {
	resp.ClientID = req.ClientID
	resp.Timestamp = req.Timestamp
	return resp
}
