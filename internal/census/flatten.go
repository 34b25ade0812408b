package census

import (
	"fmt"

	"github.com/ppiankov/censusflat/internal/logger"
	"github.com/ppiankov/censusflat/internal/model"
)

// Options controls the flattener
type Options struct {
	Variant            model.Variant
	MaxDepth           int
	DefaultRecordType  string
	PlaceFillers       []string
	DocumentPlaceLimit int
}

// DefaultOptions mirrors model.DefaultConfig().Flatten
func DefaultOptions() Options {
	return OptionsFromConfig(model.DefaultConfig().Flatten)
}

// OptionsFromConfig converts the flatten config section, filling zero values
func OptionsFromConfig(cfg model.FlattenConfig) Options {
	opts := Options{
		Variant:            cfg.Variant,
		MaxDepth:           cfg.MaxDepth,
		DefaultRecordType:  cfg.DefaultRecordType,
		PlaceFillers:       cfg.PlaceFillers,
		DocumentPlaceLimit: cfg.DocumentPlaceLimit,
	}
	if opts.Variant == "" {
		opts.Variant = model.VariantFull
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.DefaultRecordType == "" {
		opts.DefaultRecordType = "Census"
	}
	return opts
}

// Validate rejects unknown variants
func (o Options) Validate() error {
	switch o.Variant {
	case model.VariantFull, model.VariantBasic:
		return nil
	default:
		return fmt.Errorf("unknown variant %q (want %q or %q)", o.Variant, model.VariantFull, model.VariantBasic)
	}
}

// Flattener turns a raw element document into the simplified record shape
type Flattener struct {
	opts Options
}

// NewFlattener creates a flattener
func NewFlattener(opts Options) *Flattener {
	return &Flattener{opts: opts}
}

// Result is the flattened output plus the document metadata that was used
// as fallback
type Result struct {
	Output   *model.Output
	Metadata Metadata
}

// Flatten projects every RECORD of doc. Records without people are dropped.
// In the full variant, records with no date or place of their own inherit
// the document-level values.
func (f *Flattener) Flatten(doc *model.Document) *Result {
	idx := BuildIndex(doc.Elements)
	full := f.opts.Variant == model.VariantFull

	var meta Metadata
	if full {
		meta = DocumentMetadata(doc.Elements, f.opts)
	}

	out := &model.Output{Records: make([]model.Record, 0)}
	for i := range doc.Elements {
		elem := &doc.Elements[i]
		if !elem.Is(model.ElementRecord) {
			continue
		}

		record := ProjectRecord(elem, idx, f.opts)
		if full {
			if record.Date == "" {
				record.Date = meta.Date
			}
			if record.Place == "" {
				record.Place = meta.Place
			}
		}

		if len(record.People) == 0 {
			logger.Debug("skipping record without people", "record", record.ID)
			continue
		}

		logger.Debug("record flattened",
			"record", record.ID,
			"people", len(record.People),
			"relationships", len(record.RelationshipGraph))
		out.Records = append(out.Records, record)
	}

	return &Result{Output: out, Metadata: meta}
}
