package domain

import "errors"

var (
	ErrMalformedMessage    = errors.New("malformed message")
	ErrUnknownMessageType  = errors.New("unknown message type")
	ErrAlreadyExists       = errors.New("already exists")
	ErrSessionNotFound     = errors.New("session not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrSessionFull         = errors.New("session full")
	ErrTargetNotFound      = errors.New("transfer target not found")
	ErrRateLimited         = errors.New("rate limited")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrMalformedMessage, "malformed_message"},
	{ErrUnknownMessageType, "unknown_message_type"},
	{ErrAlreadyExists, "already_exists"},
	{ErrSessionNotFound, "not_found"},
	{ErrParticipantNotFound, "participant_not_found"},
	{ErrSessionFull, "full"},
	{ErrTargetNotFound, "target_not_found"},
	{ErrRateLimited, "rate_limited"},
}

// ErrorCode maps err onto its wire code, "internal" when unclassified.
func ErrorCode(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}
