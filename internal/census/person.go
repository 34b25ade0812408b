package census

import "github.com/ppiankov/censusflat/internal/model"

// ProjectPerson builds the flat Person for a PERSON element.
//
// Every recognised FIELD below the person overwrites the attribute it maps
// to, so with duplicate field types the last one in traversal order wins.
// Fields without text are ignored. When withRelationships is set, the type
// of the first RELATIONSHIP below the person becomes its relationship label;
// otherwise, or when none is found, RELATIONSHIP_TO_HEAD is used.
func ProjectPerson(elem *model.Element, idx Index, maxDepth int, withRelationships bool) model.Person {
	var givenName, surname, occupation, sex, age, race, toHead, label string

	descendants := idx.Descendants(elem.ID, maxDepth)

	for _, d := range descendants {
		if !d.Is(model.ElementField) {
			continue
		}
		text := d.Text()
		if text == "" {
			continue
		}

		switch d.FieldType {
		case model.FieldGivenName:
			givenName = text
		case model.FieldSurname:
			surname = text
		case model.FieldOccupation:
			occupation = text
		case model.FieldSex, model.FieldSexCode, model.FieldGender:
			sex = text
		case model.FieldAge:
			age = text
		case model.FieldRace, model.FieldRaceOrColor:
			race = text
		case model.FieldRelationshipToHead:
			toHead = text
		}
	}

	if withRelationships {
		for _, d := range descendants {
			if d.Is(model.ElementRelationship) && d.RelType != "" {
				label = RelationshipLabel(d.RelType)
				break
			}
		}
	}
	if label == "" {
		label = toHead
	}

	return model.Person{
		ID:              elem.ID,
		GivenName:       givenName,
		Surname:         surname,
		Relationship:    label,
		Sex:             sex,
		Age:             age,
		Race:            race,
		Occupation:      occupation,
		Relationships:   make([]model.PersonRelationship, 0),
		AttachedPersons: passthrough(elem.AttachedPersons),
		Hints:           passthrough(elem.Hints),
	}
}

// passthrough copies a raw list so the output does not alias the input
func passthrough(l model.RawList) model.RawList {
	out := make(model.RawList, len(l))
	copy(out, l)
	return out
}
