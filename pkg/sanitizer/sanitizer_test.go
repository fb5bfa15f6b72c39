package sanitizer

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic trim",
			input: "  hello  ",
			want:  "hello",
		},
		{
			name:  "multiple spaces",
			input: "hello    world",
			want:  "hello world",
		},
		{
			name:  "tabs and newlines",
			input: "hello\t\nworld",
			want:  "hello world",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Salão & Spa™ ",
			want:  "Salão & Spa™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollapseWhitespace(tt.input)
			if got != tt.want {
				t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeApartment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase block letter",
			input: "  12b ",
			want:  "12B",
		},
		{
			name:  "tower dash unit",
			input: "Tower 2 - 1404",
			want:  "TOWER 2 - 1404",
		},
		{
			name:  "strip punctuation",
			input: "Apt. #301",
			want:  "APT 301",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeApartment(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeApartment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "uppercase folded",
			input: "  Maria.Silva ",
			want:  "maria.silva",
		},
		{
			name:  "illegal characters dropped",
			input: "jo hn!@doe",
			want:  "johndoe",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeUsername(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeUsername(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already e164",
			input: "+5511987654321",
			want:  "+5511987654321",
		},
		{
			name:  "us national format",
			input: "(212) 555-0147",
			want:  "+12125550147",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "garbage",
			input: "not-a-phone",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizePhone(tt.input)
			if got != tt.want {
				t.Errorf("SanitizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
