package census

import (
	"encoding/json"
	"testing"

	"github.com/ppiankov/censusflat/internal/model"
)

func TestProjectPerson_Attributes(t *testing.T) {
	idx := BuildIndex(household().Elements)

	p := ProjectPerson(idx.Get("p1"), idx, DefaultMaxDepth, true)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"id", p.ID, "p1"},
		{"givenName", p.GivenName, "John"},
		{"surname", p.Surname, "Ockerman"},
		{"sex", p.Sex, "Male"},
		{"age", p.Age, "31"},
		{"occupation", p.Occupation, "Farmer"},
		// first RELATIONSHIP below the person is COUPLE
		{"relationship", p.Relationship, "Spouse"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if p.Relationships == nil || len(p.Relationships) != 0 {
		t.Errorf("expected empty non-nil relationships, got %#v", p.Relationships)
	}
}

func TestProjectPerson_LastMatchWins(t *testing.T) {
	idx := BuildIndex([]model.Element{
		node("p", model.ElementPerson, "a", "b", "c", "d"),
		field("a", model.FieldSex, "M"),
		field("b", model.FieldGender, "Male"),
		field("c", model.FieldAge, "4"),
		field("d", model.FieldAge, ""),
	})

	p := ProjectPerson(idx.Get("p"), idx, DefaultMaxDepth, false)

	if p.Sex != "Male" {
		t.Errorf("GENDER after SEX should overwrite it, got %q", p.Sex)
	}
	if p.Age != "4" {
		t.Errorf("empty field should be skipped, got age %q", p.Age)
	}
}

func TestProjectPerson_RelationshipLabel(t *testing.T) {
	tests := []struct {
		name     string
		relType  string
		full     bool
		expected string
	}{
		{"couple", model.RelCouple, true, "Spouse"},
		{"parent child", model.RelParentChild, true, "Child"},
		{"sibling", model.RelSibling, true, "Sibling"},
		{"unmapped falls back to raw type", model.RelGrandParent, true, "GRAND_PARENT"},
		{"basic variant uses relationship to head", model.RelCouple, false, "Head"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := BuildIndex([]model.Element{
				node("p", model.ElementPerson, "r", "h"),
				relationship("r", tt.relType, "p", "q"),
				field("h", model.FieldRelationshipToHead, "Head"),
			})
			p := ProjectPerson(idx.Get("p"), idx, DefaultMaxDepth, tt.full)
			if p.Relationship != tt.expected {
				t.Errorf("relationship = %q, want %q", p.Relationship, tt.expected)
			}
		})
	}
}

func TestProjectPerson_RelationshipToHeadFallback(t *testing.T) {
	idx := BuildIndex([]model.Element{
		node("p", model.ElementPerson, "h", "r"),
		field("h", model.FieldRelationshipToHead, "Wife"),
		{ID: "r", ElementType: model.ElementRelationship},
	})

	p := ProjectPerson(idx.Get("p"), idx, DefaultMaxDepth, true)
	if p.Relationship != "Wife" {
		t.Errorf("relationship without type should be ignored, got %q", p.Relationship)
	}
}

func TestProjectPerson_PassesThroughAttachedPersonsAndHints(t *testing.T) {
	var doc model.Document
	err := json.Unmarshal([]byte(`{"elements": [
		{"id": "p", "elementType": "PERSON",
		 "attachedPersons": [{"id": "x"}], "hints": [{"h": 1}]}
	]}`), &doc)
	if err != nil {
		t.Fatal(err)
	}
	idx := BuildIndex(doc.Elements)

	data, err := json.Marshal(ProjectPerson(idx.Get("p"), idx, DefaultMaxDepth, true))
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if got := string(raw["attachedPersons"]); got != `[{"id":"x"}]` {
		t.Errorf("attachedPersons = %s", got)
	}
	if got := string(raw["hints"]); got != `[{"h":1}]` {
		t.Errorf("hints = %s", got)
	}
}

func TestProjectPerson_JSONShape(t *testing.T) {
	idx := BuildIndex([]model.Element{node("p", model.ElementPerson)})

	data, err := json.Marshal(ProjectPerson(idx.Get("p"), idx, DefaultMaxDepth, true))
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"id", "givenName", "surname", "relationship", "sex", "age", "race"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if got := string(raw["id"]); got != `"p"` {
		t.Errorf("id = %s", got)
	}
	if got := string(raw["givenName"]); got != `""` {
		t.Errorf("givenName = %s, want empty string", got)
	}
	if _, ok := raw["occupation"]; ok {
		t.Error("empty occupation should be omitted")
	}
	for _, key := range []string{"relationships", "attachedPersons", "hints"} {
		if got := string(raw[key]); got != "[]" {
			t.Errorf("%s = %s, want []", key, got)
		}
	}
}
