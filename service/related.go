// Package service holds the business logic behind the API handlers
package service

import (
	"sort"
	"stockpix/gallery-api/model"
	"strings"
)

// RelatedPageSize is the fixed page size of the related-assets listing
const RelatedPageSize = 20

// KeywordOverlap counts keywords present in both lists. Comparison is
// case-insensitive and duplicates only count once.
func KeywordOverlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, k := range a {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			set[k] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(b))
	overlap := 0

	for _, k := range b {
		k = strings.ToLower(strings.TrimSpace(k))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		if _, ok := set[k]; ok {
			overlap++
		}
	}

	return overlap
}

// RelevanceScore ranks a candidate against a source asset:
// 2 for a category match plus 1 per overlapping keyword.
func RelevanceScore(src, candidate *model.File) int {
	score := 0

	if src.Category != "" && strings.EqualFold(src.Category, candidate.Category) {
		score += 2
	}

	return score + KeywordOverlap(src.Keywords, candidate.Keywords)
}

// RankRelated orders candidates by relevance score, breaking ties with
// the raw download count. The sort is stable so equally ranked assets
// keep their database order.
func RankRelated(src *model.File, candidates []model.File) []model.File {
	type scored struct {
		file  model.File
		score int
	}

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == src.ID {
			continue
		}
		ranked = append(ranked, scored{file: c, score: RelevanceScore(src, &c)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].file.Downloads > ranked[j].file.Downloads
	})

	out := make([]model.File, len(ranked))
	for i, r := range ranked {
		out[i] = r.file
	}

	return out
}
