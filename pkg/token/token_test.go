package token

import "testing"

func TestNewAccessTokenWellFormed(t *testing.T) {
	code := NewAccessToken()

	if !IsWellFormed(code) {
		t.Errorf("NewAccessToken() = %q, not well formed", code)
	}
}

func TestNewAccessTokenUnique(t *testing.T) {
	seen := make(map[string]struct{}, 10000)

	for i := 0; i < 10000; i++ {
		code := NewAccessToken()
		if _, ok := seen[code]; ok {
			t.Fatalf("duplicate access token after %d iterations: %q", i, code)
		}
		seen[code] = struct{}{}
	}
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{
			name: "valid uuid",
			code: "8b7f6c2a-4f0e-4c3b-9a1d-2e5f7a8b9c0d",
			want: true,
		},
		{
			name: "surrounding whitespace",
			code: "  8b7f6c2a-4f0e-4c3b-9a1d-2e5f7a8b9c0d ",
			want: true,
		},
		{
			name: "empty",
			code: "",
			want: false,
		},
		{
			name: "legacy composite code",
			code: "BOOK-fac123-user456-1700000000000",
			want: false,
		},
		{
			name: "truncated uuid",
			code: "8b7f6c2a-4f0e-4c3b",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWellFormed(tt.code); got != tt.want {
				t.Errorf("IsWellFormed(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
