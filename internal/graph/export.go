// Package graph loads flattened census records into a property graph.
package graph

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/ppiankov/censusflat/internal/logger"
	"github.com/ppiankov/censusflat/internal/model"
)

const (
	constraintPerson = `CREATE CONSTRAINT census_person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.id IS UNIQUE`
	constraintRecord = `CREATE CONSTRAINT census_record_id IF NOT EXISTS FOR (r:Record) REQUIRE r.id IS UNIQUE`

	mergeRecord = `MERGE (r:Record {id: $id})
SET r.recordType = $recordType, r.date = $date, r.place = $place`

	mergePeople = `MATCH (r:Record {id: $recordId})
UNWIND $people AS person
MERGE (p:Person {id: person.id})
SET p.givenName = person.givenName,
    p.surname = person.surname,
    p.relationship = person.relationship,
    p.sex = person.sex,
    p.age = person.age,
    p.race = person.race,
    p.occupation = person.occupation
MERGE (p)-[:LISTED_IN]->(r)`

	mergeRelationships = `UNWIND $edges AS edge
MATCH (a:Person {id: edge.from})
MATCH (b:Person {id: edge.to})
MERGE (a)-[rel:RELATES_TO {type: edge.type, role: edge.role}]->(b)`
)

// Stats counts what an export wrote
type Stats struct {
	Records       int
	People        int
	Relationships int
}

// Exporter writes records, people and person-level relationships
type Exporter struct {
	driver  Driver
	limiter *rate.Limiter
}

// NewExporter creates an exporter over driver
func NewExporter(driver Driver) *Exporter {
	return &Exporter{driver: driver}
}

// WithRateLimit caps record writes per second. Zero or negative means
// unlimited.
func (e *Exporter) WithRateLimit(recordsPerSecond float64) *Exporter {
	if recordsPerSecond <= 0 {
		e.limiter = nil
		return e
	}
	e.limiter = rate.NewLimiter(rate.Limit(recordsPerSecond), 1)
	return e
}

// EnsureSchema creates the uniqueness constraints used by the MERGEs
func (e *Exporter) EnsureSchema(ctx context.Context) error {
	for _, q := range []string{constraintPerson, constraintRecord} {
		if _, err := e.driver.ExecuteQuery(ctx, q, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}
	return nil
}

// Export merges every record of out. Re-exporting the same document does
// not duplicate nodes or edges.
func (e *Exporter) Export(ctx context.Context, out *model.Output) (Stats, error) {
	var stats Stats

	for _, rec := range out.Records {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return stats, err
			}
		}

		_, err := e.driver.ExecuteQuery(ctx, mergeRecord, map[string]any{
			"id":         rec.ID,
			"recordType": rec.RecordType,
			"date":       rec.Date,
			"place":      rec.Place,
		})
		if err != nil {
			return stats, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		stats.Records++

		people := make([]map[string]any, 0, len(rec.People))
		for _, p := range rec.People {
			people = append(people, personParams(p))
		}
		if _, err := e.driver.ExecuteQuery(ctx, mergePeople, map[string]any{
			"recordId": rec.ID,
			"people":   people,
		}); err != nil {
			return stats, fmt.Errorf("people of record %s: %w", rec.ID, err)
		}
		stats.People += len(people)

		logger.Debug("exported record", "record", rec.ID, "people", len(people))
	}

	// relationships go last so every endpoint exists regardless of record order
	edges := relationshipParams(out)
	if len(edges) > 0 {
		if _, err := e.driver.ExecuteQuery(ctx, mergeRelationships, map[string]any{"edges": edges}); err != nil {
			return stats, fmt.Errorf("relationships: %w", err)
		}
	}
	stats.Relationships = len(edges)

	return stats, nil
}

func personParams(p model.Person) map[string]any {
	return map[string]any{
		"id":           p.ID,
		"givenName":    p.GivenName,
		"surname":      p.Surname,
		"relationship": p.Relationship,
		"sex":          p.Sex,
		"age":          p.Age,
		"race":         p.Race,
		"occupation":   p.Occupation,
	}
}

func relationshipParams(out *model.Output) []map[string]any {
	var edges []map[string]any
	for _, rec := range out.Records {
		for _, p := range rec.People {
			for _, rel := range p.Relationships {
				edges = append(edges, map[string]any{
					"from": p.ID,
					"to":   rel.RelatedPersonID,
					"type": rel.Type,
					"role": rel.Role,
				})
			}
		}
	}
	return edges
}
