// Package solana holds the chain address syntax check used by the provider
// clients.
package solana

import solanago "github.com/gagliardetto/solana-go"

// IsAddress reports whether s parses as a Solana public key. It never
// errors; malformed or empty input yields false.
func IsAddress(s string) bool {
	if s == "" {
		return false
	}
	_, err := solanago.PublicKeyFromBase58(s)
	return err == nil
}
