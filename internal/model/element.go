package model

import "encoding/json"

// Document is the raw census export: a flat list of elements linked by id
type Document struct {
	Elements []Element `json:"elements"`
}

// Element is a generic typed node of the export
type Element struct {
	ID            string       `json:"id"`
	ElementType   ElementType  `json:"elementType"`
	SubElements   []SubRef     `json:"subElements,omitempty"`
	SuperElements []SuperRef   `json:"superElements,omitempty"` // RELATIONSHIP endpoints
	FieldType     FieldType    `json:"fieldType,omitempty"`
	FieldValues   []FieldValue `json:"fieldValues,omitempty"`
	RelType       string       `json:"relType,omitempty"`

	// passed through to the flattened person unchanged
	AttachedPersons RawList `json:"attachedPersons,omitempty"`
	Hints           RawList `json:"hints,omitempty"`
}

// SubRef references a child element by id
type SubRef struct {
	ID string `json:"id"`
}

// SuperRef references one side of a RELATIONSHIP
type SuperRef struct {
	ID    string        `json:"id"`
	Order EndpointOrder `json:"order,omitempty"`
}

// FieldValue holds one transcribed value of a FIELD element
type FieldValue struct {
	OrigValue OrigValue `json:"origValue"`
}

// OrigValue is the value as originally transcribed
type OrigValue struct {
	Text string `json:"text"`
}

// Text returns the first transcribed value of a FIELD, or "" when there is none
func (e *Element) Text() string {
	if len(e.FieldValues) == 0 {
		return ""
	}
	return e.FieldValues[0].OrigValue.Text
}

// Is reports whether the element has the given type
func (e *Element) Is(t ElementType) bool {
	return e != nil && e.ElementType == t
}

// ElementType tags an element
type ElementType string

const (
	ElementRecord       ElementType = "RECORD"
	ElementPerson       ElementType = "PERSON"
	ElementField        ElementType = "FIELD"
	ElementRelationship ElementType = "RELATIONSHIP"
)

// FieldType tags the attribute a FIELD carries
type FieldType string

const (
	FieldGivenName          FieldType = "NAME_GN"
	FieldSurname            FieldType = "NAME_SURN"
	FieldOccupation         FieldType = "OCCUPATION"
	FieldSex                FieldType = "SEX"
	FieldSexCode            FieldType = "SEX_CODE"
	FieldGender             FieldType = "GENDER"
	FieldAge                FieldType = "AGE"
	FieldRace               FieldType = "RACE"
	FieldRaceOrColor        FieldType = "RACE_OR_COLOR"
	FieldRelationshipToHead FieldType = "RELATIONSHIP_TO_HEAD"
	FieldDate               FieldType = "DATE"
	FieldPlace              FieldType = "PLACE"
	FieldEventType          FieldType = "EVENT_TYPE"
)

// EndpointOrder distinguishes the two sides of a RELATIONSHIP
type EndpointOrder string

const (
	OrderFirst  EndpointOrder = "FIRST"
	OrderSecond EndpointOrder = "SECOND"
)

// Relationship types with a known role table
const (
	RelParentChild      = "PARENT_CHILD"
	RelGrandParent      = "GRAND_PARENT"
	RelParentChildInLaw = "PARENT_CHILD_IN_LAW"
	RelCouple           = "COUPLE"
	RelSibling          = "SIBLING"
	RelSiblingInLaw     = "SIBLING_IN_LAW"
	RelAuntOrUncle      = "AUNT_OR_UNCLE"
)

// RawList is a JSON array passed through untouched. It always marshals as an array.
type RawList []json.RawMessage

// MarshalJSON renders a nil list as []
func (l RawList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]json.RawMessage(l))
}
