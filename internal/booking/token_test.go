package booking

import "testing"

func TestNewHoldToken(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := NewHoldToken()
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		if len(token) != 64 {
			t.Fatalf("token length = %d, want 64 hex chars", len(token))
		}
		if _, dup := seen[token]; dup {
			t.Fatal("duplicate token generated")
		}
		seen[token] = struct{}{}
	}
}
