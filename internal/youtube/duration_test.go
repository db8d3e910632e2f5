package youtube

import "testing"

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT30S", 30},
		{"PT1M", 60},
		{"PT4M13S", 253},
		{"PT1H", 3600},
		{"PT1H2M3S", 3723},
		{"P1DT2H", 93600},
		{"PT0S", 0},
		{"PT59S", 59},
		{"PT60S", 60},
		{"PT61S", 61},
		{"PT3M", 180},
		{"P1W", 604800},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseISODuration(tt.in); got != tt.want {
				t.Errorf("ParseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseISODuration_Malformed(t *testing.T) {
	// Malformed durations are 0, not an error; live streams return "P0D"
	// and some items omit the duration entirely.
	for _, in := range []string{"", "4M13S", "PTxS", "garbage", "P0D"} {
		if got := ParseISODuration(in); got != 0 {
			t.Errorf("ParseISODuration(%q) = %d, want 0", in, got)
		}
	}
}
