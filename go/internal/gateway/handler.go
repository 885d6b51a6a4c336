package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/command"
)

// Dispatcher executes one decoded request. command.Router implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, req command.Request) command.Response
}

// handleFrame decodes and dispatches one frame and returns the encoded
// response without the frame delimiter.
func handleFrame(ctx context.Context, d Dispatcher, frame []byte) []byte {
	logger := zerolog.Ctx(ctx)

	var resp command.Response
	req, err := command.DecodeRequest(frame)
	if err != nil {
		logger.Warn().
			Err(err).
			Int("bytes", len(frame)).
			Msg("failed to decode request")
		resp = command.ProtocolErrorResponse(err)
	} else {
		logger.Debug().Str("command", req.Command).Msg("request received")
		resp = d.Dispatch(ctx, req)
	}

	return encodeResponse(logger, resp)
}

// oversizeResponse answers a frame that exceeded the size limit.
func oversizeResponse(logger *zerolog.Logger, max int) []byte {
	logger.Warn().Int("max_bytes", max).Msg("discarded oversize frame")
	resp := command.ErrorResponse(command.UnknownCommand, apperrors.CodeProtocol,
		fmt.Sprintf("Message exceeds maximum size of %d bytes", max))
	return encodeResponse(logger, resp)
}

func encodeResponse(logger *zerolog.Logger, resp command.Response) []byte {
	data, err := json.Marshal(resp)
	if err == nil {
		return data
	}

	logger.Error().
		Err(err).
		Str("command", resp.Command).
		Msg("failed to encode response")
	fallback, _ := json.Marshal(command.ErrorResponse(resp.Command, apperrors.CodeInternal, "Internal server error"))
	return fallback
}
