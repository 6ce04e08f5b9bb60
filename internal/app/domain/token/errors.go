package token

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when an address argument, or the whole address
// list for a bulk call, is empty. It is raised before any network call.
var ErrEmptyInput = errors.New("no token addresses provided")

// InvalidAddressError reports a non-empty address that fails chain-format
// validation.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid solana address: %s", e.Address)
}

// UpstreamError reports a non-2xx response from a provider API. Tokens, if
// set, lists the addresses of the aborted batch.
type UpstreamError struct {
	StatusCode int
	Tokens     []string
	cause      error
}

// NewUpstreamError wraps a transport failure with the token batch it
// aborted.
func NewUpstreamError(statusCode int, tokens []string, cause error) *UpstreamError {
	return &UpstreamError{StatusCode: statusCode, Tokens: tokens, cause: cause}
}

func (e *UpstreamError) Error() string {
	if len(e.Tokens) > 0 {
		return fmt.Sprintf("upstream request failed with status %d for tokens %v", e.StatusCode, e.Tokens)
	}
	return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.cause }

// StructureError reports a mandatory field missing from an otherwise
// successful response. Path names the missing field, e.g.
// "pairs[2].txns.h6".
type StructureError struct {
	Path string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("token data missing required field %q", e.Path)
}
