package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
)

// Decode unmarshals the call payload into dst. An absent payload leaves dst
// untouched so that required-field checks report what is missing.
func Decode(call *Call, dst any) error {
	if isEmpty(call.Data) {
		return nil
	}
	if err := json.Unmarshal(call.Data, dst); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "Invalid data for "+call.Command+": "+err.Error(), err)
	}
	return nil
}

// DecodeStrict unmarshals raw into dst rejecting fields dst does not declare.
// It is used for partial updates, where only whitelisted fields may change.
func DecodeStrict(cmd string, raw json.RawMessage, dst any) error {
	if isEmpty(raw) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if field, ok := unknownField(err); ok {
			return apperrors.Newf(apperrors.CodeValidation, "Field %s cannot be updated by %s", field, cmd)
		}
		return apperrors.Wrap(apperrors.CodeValidation, "Invalid updates for "+cmd+": "+err.Error(), err)
	}
	return nil
}

// IsEmptyObject reports whether raw is absent, null, or {}.
func IsEmptyObject(raw json.RawMessage) bool {
	if isEmpty(raw) {
		return true
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	return len(m) == 0
}

func isEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// unknownField extracts the field name from encoding/json's unknown field
// error, which has no exported type.
func unknownField(err error) (string, bool) {
	const prefix = `json: unknown field "`
	msg := err.Error()
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(msg, prefix), `"`), true
}

// IDRequest is the payload of single-record GET and DELETE commands.
type IDRequest struct {
	ID string `json:"id"`
}

// DecodeID extracts a required record id from the call payload.
func DecodeID(call *Call) (string, error) {
	var req IDRequest
	if err := Decode(call, &req); err != nil {
		return "", err
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return "", apperrors.MissingFields(call.Command, "id")
	}
	return id, nil
}

// UpdateRequest is the payload of UPDATE commands.
type UpdateRequest struct {
	ID      string          `json:"id"`
	Updates json.RawMessage `json:"updates"`
}

// DecodeUpdate extracts the target id and strictly decodes the updates object
// into patch. Both are required.
func DecodeUpdate(call *Call, patch any) (string, error) {
	var req UpdateRequest
	if err := Decode(call, &req); err != nil {
		return "", err
	}
	id := strings.TrimSpace(req.ID)

	var missing []string
	if id == "" {
		missing = append(missing, "id")
	}
	if IsEmptyObject(req.Updates) {
		missing = append(missing, "updates")
	}
	if len(missing) > 0 {
		return "", apperrors.MissingFields(call.Command, missing...)
	}

	if err := DecodeStrict(call.Command, req.Updates, patch); err != nil {
		return "", err
	}
	return id, nil
}
