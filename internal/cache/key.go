package cache

import (
	"fmt"
	"sort"
	"strings"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
)

// RankingKey builds the deterministic cache key for a ranking query. Every
// parameter that affects the result is part of the key; the excluded-category
// set is sorted so insertion order never changes the key.
func RankingKey(q model.RankingQuery) string {
	excluded := append([]string(nil), q.ExcludedCategories...)
	sort.Strings(excluded)

	country := q.Country
	if country == "" {
		country = model.CountryWorldwide
	}
	category := q.Category
	if category == "" {
		category = model.CategoryAll
	}

	return fmt.Sprintf("ranking:v1:%s:%s:%s:x=%s:f=%s:n=%d:t=%d",
		q.Kind, country, category,
		strings.Join(excluded, ","),
		q.Format, q.Limit, q.ShortsThresholdSec)
}
