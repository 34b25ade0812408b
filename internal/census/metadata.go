package census

import (
	"strings"

	"github.com/ppiankov/censusflat/internal/model"
)

// usableDate filters out placeholder dates
func usableDate(text string) bool {
	return text != "" && text != "--" && text != "none"
}

// LongestDate returns the longest candidate, the first one on ties
func LongestDate(dates []string) string {
	best := ""
	for _, d := range dates {
		if len(d) > len(best) {
			best = d
		}
	}
	return best
}

// JoinPlaces joins the distinct places in first-seen order with ", ",
// skipping fillers. A positive limit keeps only that many parts.
func JoinPlaces(places []string, fillers []string, limit int) string {
	skip := make(map[string]bool, len(fillers))
	for _, f := range fillers {
		skip[f] = true
	}

	var parts []string
	seen := make(map[string]bool)
	for _, p := range places {
		if p == "" || skip[p] || seen[p] {
			continue
		}
		seen[p] = true
		parts = append(parts, p)
	}

	if limit > 0 && len(parts) > limit {
		parts = parts[:limit]
	}
	return strings.Join(parts, ", ")
}

// Metadata is the document-wide date and place used as record fallback
type Metadata struct {
	Date  string
	Place string
}

// DocumentMetadata scans every FIELD of the document regardless of record.
// The date is the first usable one; the place joins up to
// opts.DocumentPlaceLimit distinct parts.
func DocumentMetadata(elements []model.Element, opts Options) Metadata {
	var dates, places []string

	for i := range elements {
		elem := &elements[i]
		if !elem.Is(model.ElementField) {
			continue
		}
		text := elem.Text()
		if text == "" {
			continue
		}
		switch elem.FieldType {
		case model.FieldDate:
			if usableDate(text) {
				dates = append(dates, text)
			}
		case model.FieldPlace:
			places = append(places, text)
		}
	}

	var meta Metadata
	if len(dates) > 0 {
		meta.Date = dates[0]
	}
	meta.Place = JoinPlaces(places, opts.PlaceFillers, opts.DocumentPlaceLimit)
	return meta
}
