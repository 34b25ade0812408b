package overwrite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/censusflat/internal/model"
)

func person(id, given, surname string) model.Person {
	return model.Person{
		ID:            id,
		GivenName:     given,
		Surname:       surname,
		Relationships: []model.PersonRelationship{{Type: "SIBLING", Role: "SIBLING", RelatedPersonID: "stale"}},
	}
}

func document() *model.Output {
	return &model.Output{Records: []model.Record{
		{ID: "r1", People: []model.Person{
			person("1:1:A", "John", "Ockerman"),
			person("1:1:B", "Reamy", "Ockerman"),
		}},
		{ID: "r2", People: []model.Person{
			person("1:1:C", "Absolom", ""),
		}},
	}}
}

func table() *model.PatchTable {
	return &model.PatchTable{
		People: []model.PatchPerson{
			{Name: "John Ockerman (31)", ID: "1:1:A"},
			{Name: "Reamy Ockerman", ID: "1:1:B"},
			{Name: "Absolom", ID: "1:1:C"},
			{Name: "Ghost", ID: "1:1:Z"},
		},
		Relationships: []model.PatchEntry{
			{Person: "John Ockerman (31)", Links: []model.PatchLink{
				{Type: "COUPLE", Role: "SPOUSE", Related: "Reamy Ockerman"},
				{Type: "PARENT_CHILD", Role: "PARENT", Related: "Nobody"},
				{Type: "PARENT_CHILD", Role: "PARENT", Related: "Ghost"},
			}},
			{Person: "Absolom", Links: nil},
			{Person: "Unlisted", Links: []model.PatchLink{{Type: "COUPLE", Role: "SPOUSE", Related: "Absolom"}}},
			{Person: "Ghost", Links: []model.PatchLink{{Type: "COUPLE", Role: "SPOUSE", Related: "Absolom"}}},
		},
	}
}

func TestApply(t *testing.T) {
	doc := document()

	report := Apply(doc, table())

	john := doc.Records[0].People[0]
	wantJohn := []model.PersonRelationship{
		{Type: "COUPLE", Role: "SPOUSE", RelatedPersonID: "1:1:B", RelatedPersonName: "Reamy Ockerman"},
		{Type: "PARENT_CHILD", Role: "PARENT", RelatedPersonID: "1:1:Z", RelatedPersonName: "Unknown"},
	}
	if !reflect.DeepEqual(john.Relationships, wantJohn) {
		t.Errorf("john relationships = %+v", john.Relationships)
	}

	absolom := doc.Records[1].People[0]
	if absolom.Relationships == nil || len(absolom.Relationships) != 0 {
		t.Errorf("absolom relationships = %#v, want empty non-nil", absolom.Relationships)
	}

	// people not in the table keep their relationships
	reamy := doc.Records[0].People[1]
	if len(reamy.Relationships) != 1 || reamy.Relationships[0].RelatedPersonID != "stale" {
		t.Errorf("reamy relationships = %+v", reamy.Relationships)
	}

	wantUpdated := []Update{
		{Person: "John Ockerman (31)", ID: "1:1:A", Relationships: 2},
		{Person: "Absolom", ID: "1:1:C", Relationships: 0},
	}
	if !reflect.DeepEqual(report.Updated, wantUpdated) {
		t.Errorf("updated = %+v", report.Updated)
	}

	if len(report.Warnings) != 3 {
		t.Fatalf("warnings = %q, want 3", report.Warnings)
	}
	for i, want := range []string{`related="Nobody"`, `person="Unlisted"`, `id="1:1:Z"`} {
		if !strings.Contains(report.Warnings[i], want) {
			t.Errorf("warning %d = %q, want it to mention %s", i, report.Warnings[i], want)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	once := document()
	Apply(once, table())

	twice := document()
	Apply(twice, table())
	Apply(twice, table())

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second apply changed the document:\n%+v\n%+v", once, twice)
	}
}

func TestApply_KeepsUnmodelledKeys(t *testing.T) {
	var doc model.Output
	err := json.Unmarshal([]byte(`{
		"source": "kentucky",
		"records": [{"id": "r1", "relationshipGraph": [], "people": [
			{"id": "1:1:A", "givenName": "John", "verified": true, "relationships": []},
			{"id": "1:1:B", "givenName": "Reamy", "surname": "Ockerman", "relationships": []}
		]}]
	}`), &doc)
	if err != nil {
		t.Fatal(err)
	}

	Apply(&doc, table())

	data, err := json.Marshal(&doc)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"source":"kentucky"`, `"verified":true`, `"relationshipGraph":[]`, `"relatedPersonId":"1:1:B"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("patched document lost %s:\n%s", want, data)
		}
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	content := `people:
  - name: John Ockerman (31)
    id: "1:1:X7YY-L4QZ"
  - name: Reamy Ockerman
    id: "1:1:X7YY-NPRG"
relationships:
  - person: John Ockerman (31)
    links:
      - {type: COUPLE, role: SPOUSE, related: Reamy Ockerman}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tbl, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}

	if got := tbl.IDs()["Reamy Ockerman"]; got != "1:1:X7YY-NPRG" {
		t.Errorf("id = %q", got)
	}
	if len(tbl.Relationships) != 1 {
		t.Fatalf("relationships = %d, want 1", len(tbl.Relationships))
	}
	want := model.PatchLink{Type: "COUPLE", Role: "SPOUSE", Related: "Reamy Ockerman"}
	if got := tbl.Relationships[0].Links[0]; got != want {
		t.Errorf("link = %+v", got)
	}
}

func TestLoadTable_Errors(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "typo.yaml")
	if err := os.WriteFile(path, []byte("peeple: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTable(path); err == nil {
		t.Error("expected unknown keys to be rejected")
	}
}

func TestLoadTable_ShippedExample(t *testing.T) {
	tbl, err := LoadTable(filepath.Join("..", "..", "configs", "kentucky-1850-relationships.yaml"))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}

	ids := tbl.IDs()
	for _, entry := range tbl.Relationships {
		if _, ok := ids[entry.Person]; !ok {
			t.Errorf("person %q has no id", entry.Person)
		}
		for _, link := range entry.Links {
			if _, ok := ids[link.Related]; !ok {
				t.Errorf("link of %s: related %q has no id", entry.Person, link.Related)
			}
		}
	}
}
