package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Suite  Deluxe", "Suite Deluxe"},
		{"\tOcean\n View ", "Ocean View"},
		{"single", "single"},
	}

	for _, tc := range cases {
		if got := TrimAndNormalize(tc.in); got != tc.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeOwnerLabel(t *testing.T) {
	if got := NormalizeOwnerLabel("  Alice\x00  Smith \n"); got != "Alice Smith" {
		t.Errorf("expected control characters stripped, got %q", got)
	}
	if got := NormalizeOwnerLabel("Front Desk"); got != "Front Desk" {
		t.Errorf("expected clean label untouched, got %q", got)
	}
}

func TestNormalizeOwnerID(t *testing.T) {
	if got := NormalizeOwnerID("  EMP-104 "); got != "emp-104" {
		t.Errorf("expected lowercased trimmed id, got %q", got)
	}
}
