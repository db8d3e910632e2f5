package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
)

// Field limits for request parameters.
const (
	MaxChannelIDLen = 32
	MaxUserIDLen    = 64
	MaxCategoryLen  = 8
	MaxExcluded     = 16
)

var (
	// channelIDRe matches YouTube channel ids: alphanumeric, dash, underscore.
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// countryRe matches two-letter ISO country codes.
	countryRe = regexp.MustCompile(`^[A-Za-z]{2}$`)
	// categoryRe matches numeric YouTube category ids.
	categoryRe = regexp.MustCompile(`^[0-9]+$`)
	// userIDRe accepts opaque client-generated user ids.
	userIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateCountry normalizes a country filter. Empty and "worldwide" mean
// no region filter; anything else must be a two-letter code.
func ValidateCountry(country string) (string, string) {
	country = strings.TrimSpace(country)
	if country == "" || strings.EqualFold(country, model.CountryWorldwide) {
		return model.CountryWorldwide, ""
	}
	if !countryRe.MatchString(country) {
		return "", "country must be a two-letter code or \"worldwide\""
	}
	return strings.ToUpper(country), ""
}

// ValidateCategory normalizes a category filter. Empty and "all" mean no
// category filter; anything else must be a numeric category id.
func ValidateCategory(category string) (string, string) {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, model.CategoryAll) {
		return model.CategoryAll, ""
	}
	if len(category) > MaxCategoryLen || !categoryRe.MatchString(category) {
		return "", "category must be a numeric category id or \"all\""
	}
	return category, ""
}

// ValidateExcluded parses a comma-separated excluded-category list.
func ValidateExcluded(raw string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ""
	}
	parts := strings.Split(raw, ",")
	if len(parts) > MaxExcluded {
		return nil, "too many excluded categories"
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(p) > MaxCategoryLen || !categoryRe.MatchString(p) {
			return nil, "excluded categories must be numeric category ids"
		}
		out = append(out, p)
	}
	return out, ""
}

// ValidateFormat parses the video-format filter.
func ValidateFormat(raw string) (model.VideoFormat, string) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return model.FormatAll, ""
	case "long", "longform", "long-form":
		return model.FormatLong, ""
	case "shorts", "short", "short-form":
		return model.FormatShorts, ""
	default:
		return "", "format must be one of all, long, shorts"
	}
}

// ValidateLimit parses the requested result count.
func ValidateLimit(raw string, fallback, max int) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, "limit must be a positive integer"
	}
	if n > max {
		return max, ""
	}
	return n, ""
}

// ValidateChannelID checks that a channel id is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 32 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateUserID checks that a user id is well-formed. The raw id is hashed
// before storage, so only shape is enforced here.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "userId is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "userId must be at most 64 characters"
	}
	if !userIDRe.MatchString(id) {
		return "", "userId contains invalid characters"
	}
	return id, ""
}
