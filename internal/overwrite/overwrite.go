// Package overwrite replaces person relationships in a flattened document
// with manually verified ones from a patch table.
package overwrite

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/censusflat/internal/logger"
	"github.com/ppiankov/censusflat/internal/model"
)

// LoadTable reads a YAML patch table
func LoadTable(path string) (*model.PatchTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patch table: %w", err)
	}

	var table model.PatchTable
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("parse patch table %s: %w", path, err)
	}
	return &table, nil
}

// Report summarises one Apply run
type Report struct {
	Updated  []Update
	Warnings []string
}

// Update records how many relationships a person ended up with
type Update struct {
	Person        string
	ID            string
	Relationships int
}

// Apply overwrites the relationships of every person listed in table.
// Unresolvable names or ids produce a warning and skip only that entry.
// Applying the same table twice gives the same document.
func Apply(out *model.Output, table *model.PatchTable) Report {
	var report Report
	warn := func(msg string, keyvals ...interface{}) {
		logger.Warn(msg, keyvals...)
		report.Warnings = append(report.Warnings, formatWarning(msg, keyvals...))
	}

	ids := table.IDs()
	byID := make(map[string]*model.Person)
	for r := range out.Records {
		people := out.Records[r].People
		for i := range people {
			byID[people[i].ID] = &people[i]
		}
	}

	for _, entry := range table.Relationships {
		id, ok := ids[entry.Person]
		if !ok || id == "" {
			warn("no id found for person", "person", entry.Person)
			continue
		}

		person, ok := byID[id]
		if !ok {
			warn("no person found for id", "person", entry.Person, "id", id)
			continue
		}

		rels := make([]model.PersonRelationship, 0, len(entry.Links))
		for _, link := range entry.Links {
			relatedID, ok := ids[link.Related]
			if !ok || relatedID == "" {
				warn("no id found for related person", "person", entry.Person, "related", link.Related)
				continue
			}

			rels = append(rels, model.PersonRelationship{
				Type:              link.Type,
				Role:              link.Role,
				RelatedPersonID:   relatedID,
				RelatedPersonName: nameOf(out, relatedID),
			})
		}

		person.Relationships = rels
		report.Updated = append(report.Updated, Update{Person: entry.Person, ID: id, Relationships: len(rels)})
		logger.Info("updated relationships", "person", entry.Person, "count", len(rels))
	}

	return report
}

// nameOf scans the document for id. Ids not present resolve to "Unknown".
func nameOf(out *model.Output, id string) string {
	for _, r := range out.Records {
		for i := range r.People {
			if r.People[i].ID == id {
				return r.People[i].DisplayName()
			}
		}
	}
	return model.UnknownName
}

func formatWarning(msg string, keyvals ...interface{}) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%q", keyvals[i], fmt.Sprint(keyvals[i+1]))
	}
	return b.String()
}
