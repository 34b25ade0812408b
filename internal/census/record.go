package census

import "github.com/ppiankov/censusflat/internal/model"

// ProjectRecord builds the flat Record for a RECORD element. The record's
// direct subElements are taken as person ids; ids that do not resolve to a
// PERSON contribute no person but are still scanned for record-level fields.
func ProjectRecord(rec *model.Element, idx Index, opts Options) model.Record {
	full := opts.Variant == model.VariantFull

	people := make([]model.Person, 0, len(rec.SubElements))
	for _, sub := range rec.SubElements {
		elem := idx.Get(sub.ID)
		if !elem.Is(model.ElementPerson) {
			continue
		}
		people = append(people, ProjectPerson(elem, idx, opts.MaxDepth, full))
	}

	record := model.Record{
		ID:     rec.ID,
		People: people,
	}

	if full {
		byID := make(map[string]*model.Person, len(people))
		for i := range people {
			byID[people[i].ID] = &people[i]
		}

		rels := recordRelationships(rec, idx, opts.MaxDepth)
		for i := range people {
			people[i].Relationships = PersonRelationships(people[i].ID, rels, byID)
		}
		record.RelationshipGraph = RelationshipGraph(rels, byID)
	}

	var fields []*model.Element
	for _, sub := range rec.SubElements {
		fields = append(fields, idx.Fields(sub.ID, opts.MaxDepth)...)
	}

	var dates, places []string
	recordType := opts.DefaultRecordType
	for _, field := range fields {
		text := field.Text()
		if text == "" {
			continue
		}
		switch field.FieldType {
		case model.FieldDate:
			if usableDate(text) {
				dates = append(dates, text)
			}
		case model.FieldPlace:
			places = append(places, text)
		case model.FieldEventType:
			if text != "Other" {
				recordType = text
			}
		}
	}

	record.RecordType = recordType
	record.Date = LongestDate(dates)
	record.Place = JoinPlaces(places, opts.PlaceFillers, 0)

	return record
}

// recordRelationships collects the RELATIONSHIP elements reachable from any
// of the record's subElements, each element once, in first-seen order
func recordRelationships(rec *model.Element, idx Index, maxDepth int) []*model.Element {
	var rels []*model.Element
	seen := make(map[*model.Element]bool)

	for _, sub := range rec.SubElements {
		if idx.Get(sub.ID) == nil {
			continue
		}
		for _, d := range idx.Descendants(sub.ID, maxDepth) {
			if d.Is(model.ElementRelationship) && !seen[d] {
				seen[d] = true
				rels = append(rels, d)
			}
		}
	}

	return rels
}
