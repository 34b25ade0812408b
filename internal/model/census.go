package model

import (
	"encoding/json"
	"strings"
)

// Output is the simplified document written by the flattener
type Output struct {
	Records []Record `json:"records"`
	Extra   Extra    `json:"-"`
}

// Record is one census entry (household) with its people. A nil
// RelationshipGraph is left out of the JSON; an empty one is written as [].
type Record struct {
	ID                string      `json:"id"`
	RecordType        string      `json:"recordType"`
	Date              string      `json:"date"`
	Place             string      `json:"place"`
	People            []Person    `json:"people"`
	RelationshipGraph []GraphEdge `json:"-"`
	Extra             Extra       `json:"-"`
}

// Person is the flat projection of a PERSON element
type Person struct {
	ID              string               `json:"id"`
	GivenName       string               `json:"givenName"`
	Surname         string               `json:"surname"`
	Relationship    string               `json:"relationship"` // free-text role label
	Sex             string               `json:"sex"`
	Age             string               `json:"age"`
	Race            string               `json:"race"`
	Occupation      string               `json:"occupation,omitempty"`
	Relationships   []PersonRelationship `json:"relationships"`
	AttachedPersons RawList              `json:"attachedPersons"`
	Hints           RawList              `json:"hints"`
	Extra           Extra                `json:"-"`
}

// DisplayName joins given name and surname, "Unknown" when both are empty
func (p *Person) DisplayName() string {
	name := strings.TrimSpace(p.GivenName + " " + p.Surname)
	if name == "" {
		return UnknownName
	}
	return name
}

// UnknownName is used when a related person has no name fields
const UnknownName = "Unknown"

// PersonRelationship is an outgoing edge seen from one person
type PersonRelationship struct {
	Type              string `json:"type"`
	Role              string `json:"role"`
	RelatedPersonID   string `json:"relatedPersonId"`
	RelatedPersonName string `json:"relatedPersonName"`
}

// GraphEdge is an undirected record-level relationship
type GraphEdge struct {
	ID      string        `json:"id"`
	Type    string        `json:"type"`
	Person1 GraphEndpoint `json:"person1"`
	Person2 GraphEndpoint `json:"person2"`
}

// GraphEndpoint is one side of a GraphEdge
type GraphEndpoint struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PeopleCount returns the number of people across all records
func (o *Output) PeopleCount() int {
	total := 0
	for _, r := range o.Records {
		total += len(r.People)
	}
	return total
}

var (
	outputKeys = []string{"records"}
	recordKeys = []string{"id", "recordType", "date", "place", "people", "relationshipGraph"}
	personKeys = []string{"id", "givenName", "surname", "relationship", "sex", "age", "race",
		"occupation", "relationships", "attachedPersons", "hints"}
)

func (o Output) MarshalJSON() ([]byte, error) {
	type plain Output
	return encodeWithExtra(plain(o), o.Extra)
}

func (o *Output) UnmarshalJSON(data []byte) error {
	type plain Output
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	extra, err := splitExtra(data, outputKeys...)
	if err != nil {
		return err
	}
	*o = Output(v)
	o.Extra = extra
	return nil
}

// recordJSON is the wire shape of Record; the graph pointer tells an absent
// key from an empty list
type recordJSON struct {
	ID                string       `json:"id"`
	RecordType        string       `json:"recordType"`
	Date              string       `json:"date"`
	Place             string       `json:"place"`
	People            []Person     `json:"people"`
	RelationshipGraph *[]GraphEdge `json:"relationshipGraph,omitempty"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	v := recordJSON{
		ID:         r.ID,
		RecordType: r.RecordType,
		Date:       r.Date,
		Place:      r.Place,
		People:     r.People,
	}
	if r.RelationshipGraph != nil {
		v.RelationshipGraph = &r.RelationshipGraph
	}
	return encodeWithExtra(v, r.Extra)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var v recordJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	extra, err := splitExtra(data, recordKeys...)
	if err != nil {
		return err
	}
	*r = Record{
		ID:         v.ID,
		RecordType: v.RecordType,
		Date:       v.Date,
		Place:      v.Place,
		People:     v.People,
		Extra:      extra,
	}
	if v.RelationshipGraph != nil {
		r.RelationshipGraph = *v.RelationshipGraph
		if r.RelationshipGraph == nil {
			r.RelationshipGraph = make([]GraphEdge, 0)
		}
	}
	return nil
}

func (p Person) MarshalJSON() ([]byte, error) {
	type plain Person
	return encodeWithExtra(plain(p), p.Extra)
}

func (p *Person) UnmarshalJSON(data []byte) error {
	type plain Person
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	extra, err := splitExtra(data, personKeys...)
	if err != nil {
		return err
	}
	*p = Person(v)
	p.Extra = extra
	return nil
}
