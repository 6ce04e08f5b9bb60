package solana

import "testing"

func TestIsAddress(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"So11111111111111111111111111111111111111112", true},
		{"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", true},
		{"", false},
		{"abc", false},
		{"not-an-address", false},
		{"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", false},
	}
	for _, tc := range cases {
		if got := IsAddress(tc.input); got != tc.want {
			t.Fatalf("IsAddress(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
