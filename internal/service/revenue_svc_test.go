package service

import "testing"

func TestEstimateRevenue_BelowMonetizationFloor(t *testing.T) {
	for _, subs := range []int64{0, 1, 500, 999} {
		got := EstimateRevenue(10_000_000, 600, "20", "US", subs, 60)
		if got != 0 {
			t.Errorf("subs=%d: revenue = %d, want 0 below monetization floor", subs, got)
		}
	}
}

func TestEstimateRevenue_AtMonetizationFloor(t *testing.T) {
	got := EstimateRevenue(1_000_000, 600, "20", "US", 1000, 60)
	if got == 0 {
		t.Error("exactly 1000 subscribers should be monetized")
	}
}

func TestEstimateRevenue_ShortFormKRGaming(t *testing.T) {
	// 30 s video, gaming (20), KR, monetized:
	// rpm = 0.1 * 1.2 * 0.8 = 0.096; 1_000_000/1000 * 0.096 = 96
	got := EstimateRevenue(1_000_000, 30, "20", "KR", 50_000, 60)
	if got != 96 {
		t.Errorf("revenue = %d, want 96", got)
	}
}

func TestEstimateRevenue_LongFormKRGaming(t *testing.T) {
	// 10 min video, same filters:
	// rpm = 2.0 * 1.2 * 0.8 = 1.92; 1_000_000/1000 * 1.92 = 1920
	got := EstimateRevenue(1_000_000, 600, "20", "KR", 50_000, 60)
	if got != 1920 {
		t.Errorf("revenue = %d, want 1920", got)
	}
}

func TestEstimateRevenue_ThresholdDecidesDurationClass(t *testing.T) {
	// A 120 s video is long-form under the 60 s threshold but short-form
	// under the outlier view's 180 s threshold.
	long := EstimateRevenue(1_000_000, 120, "20", "KR", 50_000, 60)
	short := EstimateRevenue(1_000_000, 120, "20", "KR", 50_000, 180)
	if long != 1920 {
		t.Errorf("threshold 60: revenue = %d, want 1920", long)
	}
	if short != 96 {
		t.Errorf("threshold 180: revenue = %d, want 96", short)
	}
}

func TestEstimateRevenue_MonotonicInViews(t *testing.T) {
	var prev int64 = -1
	for _, views := range []int64{0, 100, 1000, 50_000, 1_000_000, 100_000_000} {
		got := EstimateRevenue(views, 600, "24", "US", 5000, 60)
		if got < prev {
			t.Errorf("revenue decreased: views=%d gave %d after %d", views, got, prev)
		}
		prev = got
	}
}

func TestEstimateRevenue_UnknownFallbacks(t *testing.T) {
	if m := CategoryMultiplier("9999"); m != UnknownCategoryMultiplier {
		t.Errorf("unknown category multiplier = %v, want %v", m, UnknownCategoryMultiplier)
	}
	if m := CountryMultiplier("ZZ"); m != UnknownCountryMultiplier {
		t.Errorf("unknown country multiplier = %v, want %v", m, UnknownCountryMultiplier)
	}
	// Worldwide sentinel has no country table entry, so it gets the floor.
	if m := CountryMultiplier("worldwide"); m != UnknownCountryMultiplier {
		t.Errorf("worldwide multiplier = %v, want %v", m, UnknownCountryMultiplier)
	}
}

func TestEstimateRevenue_UnknownCountryIsConservative(t *testing.T) {
	known := EstimateRevenue(1_000_000, 600, "20", "US", 50_000, 60)
	unknown := EstimateRevenue(1_000_000, 600, "20", "ZZ", 50_000, 60)
	if unknown >= known {
		t.Errorf("unknown country estimate (%d) should fall below US (%d)", unknown, known)
	}
}

func TestChannelGrade(t *testing.T) {
	tests := []struct {
		subs int64
		want string
	}{
		{15_000_000, "S"},
		{10_000_000, "S"},
		{2_500_000, "A"},
		{500_000, "B"},
		{50_000, "C"},
		{2000, "D"},
		{999, "E"},
		{0, "E"},
	}
	for _, tt := range tests {
		if got := ChannelGrade(tt.subs); got != tt.want {
			t.Errorf("ChannelGrade(%d) = %s, want %s", tt.subs, got, tt.want)
		}
	}
}
