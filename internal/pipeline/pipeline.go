package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/censusflat/internal/cache"
	"github.com/ppiankov/censusflat/internal/census"
	"github.com/ppiankov/censusflat/internal/logger"
	"github.com/ppiankov/censusflat/internal/model"
)

// Pipeline loads a raw export, flattens it and renders the result
type Pipeline struct {
	flattener *census.Flattener
	opts      census.Options
	cache     cache.Cache // nil when caching is disabled
}

// NewPipeline creates a pipeline from the configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	opts := census.OptionsFromConfig(cfg.Flatten)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		flattener: census.NewFlattener(opts),
		opts:      opts,
	}
	if cfg.Cache.Enabled {
		p.cache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	return p, nil
}

// WithCache replaces the pipeline cache. Passing nil disables caching.
func (p *Pipeline) WithCache(c cache.Cache) *Pipeline {
	p.cache = c
	return p
}

// Result is the outcome of flattening one input file
type Result struct {
	Input    string
	Output   *model.Output
	Metadata census.Metadata
	Elements int
	Cached   bool
	Duration time.Duration
}

// Flatten reads inputPath and returns its flattened form
func (p *Pipeline) Flatten(ctx context.Context, inputPath string) (*Result, error) {
	start := time.Now()

	data, err := ReadFile(inputPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cache.Key(data, p.fingerprint())
	if p.cache != nil {
		if res, ok := p.fromCache(key); ok {
			res.Input = inputPath
			res.Duration = time.Since(start)
			logger.Debug("cache hit", "input", inputPath)
			return res, nil
		}
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputPath, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("processing elements", "input", inputPath, "elements", len(doc.Elements))
	flat := p.flattener.Flatten(doc)

	res := &Result{
		Input:    inputPath,
		Output:   flat.Output,
		Metadata: flat.Metadata,
		Elements: len(doc.Elements),
		Duration: time.Since(start),
	}

	if p.cache != nil {
		p.toCache(key, res)
	}

	return res, nil
}

// cachedResult is what gets stored per input
type cachedResult struct {
	Output   *model.Output `json:"output"`
	Date     string        `json:"date"`
	Place    string        `json:"place"`
	Elements int           `json:"elements"`
}

func (p *Pipeline) fromCache(key string) (*Result, bool) {
	data, ok := p.cache.Get(key)
	if !ok {
		return nil, false
	}

	var entry cachedResult
	if err := json.Unmarshal(data, &entry); err != nil || entry.Output == nil {
		logger.Warn("discarding unreadable cache entry", "key", key, "err", err)
		_ = p.cache.Delete(key)
		return nil, false
	}

	return &Result{
		Output:   entry.Output,
		Metadata: census.Metadata{Date: entry.Date, Place: entry.Place},
		Elements: entry.Elements,
		Cached:   true,
	}, true
}

func (p *Pipeline) toCache(key string, res *Result) {
	data, err := json.Marshal(cachedResult{
		Output:   res.Output,
		Date:     res.Metadata.Date,
		Place:    res.Metadata.Place,
		Elements: res.Elements,
	})
	if err != nil {
		logger.Warn("cannot encode cache entry", "err", err)
		return
	}
	if err := p.cache.Set(key, data, 0); err != nil {
		logger.Warn("cannot write cache entry", "err", err)
	}
}

// fingerprint identifies the options that affect the output
func (p *Pipeline) fingerprint() string {
	return fmt.Sprintf("%s|%d|%s|%s|%d",
		p.opts.Variant,
		p.opts.MaxDepth,
		p.opts.DefaultRecordType,
		strings.Join(p.opts.PlaceFillers, "\x1f"),
		p.opts.DocumentPlaceLimit)
}

// OutputPath derives the default output path: the input path with its
// extension replaced by suffix + ".json"
func OutputPath(inputPath, suffix string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + suffix + ".json"
}
