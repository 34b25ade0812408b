package census

import "github.com/ppiankov/censusflat/internal/model"

func field(id string, ft model.FieldType, text string) model.Element {
	e := model.Element{ID: id, ElementType: model.ElementField, FieldType: ft}
	if text != "" {
		e.FieldValues = []model.FieldValue{{OrigValue: model.OrigValue{Text: text}}}
	}
	return e
}

func node(id string, t model.ElementType, children ...string) model.Element {
	e := model.Element{ID: id, ElementType: t}
	for _, c := range children {
		e.SubElements = append(e.SubElements, model.SubRef{ID: c})
	}
	return e
}

func relationship(id, relType, first, second string) model.Element {
	return model.Element{
		ID:          id,
		ElementType: model.ElementRelationship,
		RelType:     relType,
		SuperElements: []model.SuperRef{
			{ID: first, Order: model.OrderFirst},
			{ID: second, Order: model.OrderSecond},
		},
	}
}

// household is a small two-person record: John (head) and Reamy, married,
// with a child George whose relationship lives under John.
func household() *model.Document {
	return &model.Document{Elements: []model.Element{
		node("rec1", model.ElementRecord, "p1", "p2", "p3"),

		node("p1", model.ElementPerson, "p1-name", "p1-sex", "p1-age", "p1-occ", "rel-couple", "rel-child"),
		node("p1-name", "NAME", "p1-gn", "p1-sn"),
		field("p1-gn", model.FieldGivenName, "John"),
		field("p1-sn", model.FieldSurname, "Ockerman"),
		field("p1-sex", model.FieldSex, "Male"),
		field("p1-age", model.FieldAge, "31"),
		field("p1-occ", model.FieldOccupation, "Farmer"),
		relationship("rel-couple", model.RelCouple, "p1", "p2"),
		relationship("rel-child", model.RelParentChild, "p1", "p3"),

		node("p2", model.ElementPerson, "p2-gn", "p2-sn", "p2-sex", "p2-date", "p2-place", "p2-place2"),
		field("p2-gn", model.FieldGivenName, "Reamy"),
		field("p2-sn", model.FieldSurname, "Ockerman"),
		field("p2-sex", model.FieldSexCode, "F"),
		field("p2-date", model.FieldDate, "1850"),
		field("p2-place", model.FieldPlace, "Mason"),
		field("p2-place2", model.FieldPlace, "Ky"),

		node("p3", model.ElementPerson, "p3-gn", "p3-date", "p3-place"),
		field("p3-gn", model.FieldGivenName, "George"),
		field("p3-date", model.FieldDate, "June 1850"),
		field("p3-place", model.FieldPlace, "Kentucky"),
	}}
}
