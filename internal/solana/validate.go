package solana

import "github.com/soultrade/marketdata/internal/app/domain/token"

// ValidateAddress enforces the client input contract: empty input is
// rejected as ErrEmptyInput before the syntax check, malformed input as an
// InvalidAddressError carrying the offending string.
func ValidateAddress(addr string) error {
	if addr == "" {
		return token.ErrEmptyInput
	}
	if !IsAddress(addr) {
		return &token.InvalidAddressError{Address: addr}
	}
	return nil
}

// ValidateAddresses applies ValidateAddress to a batch. An empty batch is
// an ErrEmptyInput in its own right.
func ValidateAddresses(addrs []string) error {
	if len(addrs) == 0 {
		return token.ErrEmptyInput
	}
	for _, addr := range addrs {
		if err := ValidateAddress(addr); err != nil {
			return err
		}
	}
	return nil
}
