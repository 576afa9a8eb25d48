package period

import (
	"cmp"
	"slices"
	"strings"
)

type Searchable interface {
	Dated
	SearchText() []string
}

// Search keeps records whose text fields or display date contain term, ignoring case.
// An empty term keeps everything. Results are sorted newest first.
func Search[T Searchable](records []T, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]T, 0, len(records))
	for _, r := range records {
		if term == "" || matches(r, term) {
			out = append(out, r)
		}
	}

	SortByDateDesc(out)

	return out
}

func matches[T Searchable](r T, term string) bool {
	if strings.Contains(r.RecordDate().Display(), term) {
		return true
	}

	for _, field := range r.SearchText() {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}

// SortByDateDesc orders records newest first, keeping the relative order of equal dates.
func SortByDateDesc[T Dated](records []T) {
	slices.SortStableFunc(records, func(a, b T) int {
		return cmp.Compare(b.RecordDate().Unix(), a.RecordDate().Unix())
	})
}
