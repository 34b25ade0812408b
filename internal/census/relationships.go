package census

import "github.com/ppiankov/censusflat/internal/model"

// roleTable maps relationship type -> endpoint order -> role of that endpoint
var roleTable = map[string]map[model.EndpointOrder]string{
	model.RelParentChild: {
		model.OrderFirst:  "PARENT",
		model.OrderSecond: "CHILD",
	},
	model.RelGrandParent: {
		model.OrderFirst:  "GRANDPARENT",
		model.OrderSecond: "GRANDCHILD",
	},
	model.RelParentChildInLaw: {
		model.OrderFirst:  "PARENT_IN_LAW",
		model.OrderSecond: "CHILD_IN_LAW",
	},
	model.RelCouple: {
		model.OrderFirst:  "SPOUSE",
		model.OrderSecond: "SPOUSE",
	},
	model.RelSibling: {
		model.OrderFirst:  "SIBLING",
		model.OrderSecond: "SIBLING",
	},
	model.RelSiblingInLaw: {
		model.OrderFirst:  "SIBLING_IN_LAW",
		model.OrderSecond: "SIBLING_IN_LAW",
	},
	model.RelAuntOrUncle: {
		model.OrderFirst:  "AUNT_OR_UNCLE",
		model.OrderSecond: "NIECE_OR_NEPHEW",
	},
}

// labels for the single free-text relationship attribute of a person
var relationshipLabels = map[string]string{
	model.RelCouple:      "Spouse",
	model.RelParentChild: "Child",
	model.RelSibling:     "Sibling",
}

// RoleFor returns the role of the endpoint with the given order. Unknown
// types or orders fall back to the raw relationship type.
func RoleFor(relType string, order model.EndpointOrder) string {
	if role, ok := roleTable[relType][order]; ok {
		return role
	}
	return relType
}

// RelationshipLabel returns the display label for a relationship type
func RelationshipLabel(relType string) string {
	if label, ok := relationshipLabels[relType]; ok {
		return label
	}
	return relType
}

// usable reports whether a RELATIONSHIP has exactly two endpoints and a type
func usable(rel *model.Element) bool {
	return len(rel.SuperElements) == 2 && rel.RelType != ""
}

// PersonRelationships returns the outgoing edges of personID over rels.
// Edges whose other endpoint is not in people are skipped.
func PersonRelationships(personID string, rels []*model.Element, people map[string]*model.Person) []model.PersonRelationship {
	out := make([]model.PersonRelationship, 0)

	for _, rel := range rels {
		if !usable(rel) {
			continue
		}

		self := -1
		for i, end := range rel.SuperElements {
			if end.ID == personID {
				self = i
				break
			}
		}
		if self < 0 {
			continue
		}

		other := rel.SuperElements[1-self]
		related, ok := people[other.ID]
		if !ok {
			continue
		}

		out = append(out, model.PersonRelationship{
			Type:              rel.RelType,
			Role:              RoleFor(rel.RelType, rel.SuperElements[self].Order),
			RelatedPersonID:   other.ID,
			RelatedPersonName: related.DisplayName(),
		})
	}

	return out
}

// RelationshipGraph returns one undirected edge per usable relationship
// whose two endpoints are both known people
func RelationshipGraph(rels []*model.Element, people map[string]*model.Person) []model.GraphEdge {
	graph := make([]model.GraphEdge, 0)

	for _, rel := range rels {
		if !usable(rel) {
			continue
		}

		end1, end2 := rel.SuperElements[0], rel.SuperElements[1]
		p1, ok1 := people[end1.ID]
		p2, ok2 := people[end2.ID]
		if !ok1 || !ok2 {
			continue
		}

		graph = append(graph, model.GraphEdge{
			ID:   rel.ID,
			Type: rel.RelType,
			Person1: model.GraphEndpoint{
				ID:   end1.ID,
				Name: p1.DisplayName(),
				Role: RoleFor(rel.RelType, end1.Order),
			},
			Person2: model.GraphEndpoint{
				ID:   end2.ID,
				Name: p2.DisplayName(),
				Role: RoleFor(rel.RelType, end2.Order),
			},
		})
	}

	return graph
}
