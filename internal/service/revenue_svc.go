package service

import "math"

// Revenue heuristic constants. The figures are display estimates built from
// published industry RPM ranges; they have no relationship to actual creator
// payouts and every value derived from them is tagged "estimated" in API
// output.
const (
	// MonetizationMinSubscribers is the partner-program floor: channels
	// below it earn nothing, so the estimate is 0.
	MonetizationMinSubscribers = 1000

	// Base RPM in USD per 1000 views. Short-form monetizes far below
	// long-form.
	BaseRPMLong  = 2.0
	BaseRPMShort = 0.1

	// Multiplier fallbacks for ids missing from the tables below.
	UnknownCategoryMultiplier = 1.0
	UnknownCountryMultiplier  = 0.3
)

// categoryRPMMultiplier adjusts the base RPM by video category. Finance and
// education inventory sells high; music and entertainment low.
var categoryRPMMultiplier = map[string]float64{
	"1":  0.9, // Film & Animation
	"2":  1.1, // Autos & Vehicles
	"10": 0.7, // Music
	"15": 0.9, // Pets & Animals
	"17": 1.0, // Sports
	"19": 1.1, // Travel & Events
	"20": 1.2, // Gaming
	"22": 1.0, // People & Blogs
	"23": 0.9, // Comedy
	"24": 0.8, // Entertainment
	"25": 1.3, // News & Politics
	"26": 1.1, // Howto & Style
	"27": 1.5, // Education
	"28": 1.6, // Science & Technology
}

// countryRPMMultiplier adjusts the base RPM by audience country.
var countryRPMMultiplier = map[string]float64{
	"US": 1.3,
	"GB": 1.2,
	"DE": 1.2,
	"CA": 1.2,
	"AU": 1.2,
	"FR": 1.0,
	"JP": 0.9,
	"KR": 0.8,
	"TW": 0.6,
	"MX": 0.4,
	"BR": 0.45,
	"RU": 0.35,
	"ID": 0.3,
	"VN": 0.3,
	"IN": 0.25,
}

// EstimateRevenue returns the estimated USD revenue for a video: 0 below the
// monetization floor, otherwise round(views/1000 * rpm) where rpm is the
// base rate for the duration class scaled by category and country
// multipliers. shortsThreshold decides the duration class and must be stated
// by the caller (60 s in the ranking view, 180 s in the outlier view).
func EstimateRevenue(views int64, durationSeconds int, categoryID, countryCode string, subscriberCount int64, shortsThreshold int) int64 {
	if subscriberCount < MonetizationMinSubscribers {
		return 0
	}

	rpm := baseRPM(durationSeconds <= shortsThreshold) *
		CategoryMultiplier(categoryID) *
		CountryMultiplier(countryCode)

	return int64(math.Round(float64(views) / 1000 * rpm))
}

func baseRPM(isShort bool) float64 {
	if isShort {
		return BaseRPMShort
	}
	return BaseRPMLong
}

// CategoryMultiplier returns the RPM multiplier for a category id,
// or 1.0 for unknown categories.
func CategoryMultiplier(categoryID string) float64 {
	if m, ok := categoryRPMMultiplier[categoryID]; ok {
		return m
	}
	return UnknownCategoryMultiplier
}

// CountryMultiplier returns the RPM multiplier for a country code, or a
// conservative floor for unknown countries (including the worldwide
// sentinel, where the audience mix is unknowable).
func CountryMultiplier(countryCode string) float64 {
	if m, ok := countryRPMMultiplier[countryCode]; ok {
		return m
	}
	return UnknownCountryMultiplier
}

// ChannelGrade maps subscriber count to the display letter grade.
func ChannelGrade(subscriberCount int64) string {
	switch {
	case subscriberCount >= 10_000_000:
		return "S"
	case subscriberCount >= 1_000_000:
		return "A"
	case subscriberCount >= 100_000:
		return "B"
	case subscriberCount >= 10_000:
		return "C"
	case subscriberCount >= 1000:
		return "D"
	default:
		return "E"
	}
}
