package model

import "time"

// Config holds all censusflat settings. Viper unmarshals into it via the
// mapstructure tags; config show/init render it via the yaml tags.
type Config struct {
	Flatten     FlattenConfig     `yaml:"flatten" mapstructure:"flatten"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Patch       PatchConfig       `yaml:"patch" mapstructure:"patch"`
	Graph       GraphConfig       `yaml:"graph" mapstructure:"graph"`
}

// Variant selects how much of the document the flattener projects
type Variant string

const (
	// VariantFull adds per-person relationships, the record relationship graph
	// and document-level date/place fallback
	VariantFull Variant = "full"
	// VariantBasic projects records and person attributes only
	VariantBasic Variant = "basic"
)

// FlattenConfig controls the tree walk and record heuristics
type FlattenConfig struct {
	Variant            Variant  `yaml:"variant" mapstructure:"variant"`
	MaxDepth           int      `yaml:"max_depth" mapstructure:"max_depth"`
	DefaultRecordType  string   `yaml:"default_record_type" mapstructure:"default_record_type"`
	PlaceFillers       []string `yaml:"place_fillers" mapstructure:"place_fillers"`               // tokens dropped from place strings
	DocumentPlaceLimit int      `yaml:"document_place_limit" mapstructure:"document_place_limit"` // max place parts for the document fallback
}

// CacheConfig controls caching of flatten results
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Suffix  string `yaml:"suffix" mapstructure:"suffix"` // appended to the input name when no output path is given
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// PatchConfig points at the relationship overwrite table
type PatchConfig struct {
	Table string `yaml:"table" mapstructure:"table"`
}

// GraphConfig holds the Neo4j connection used by graph push
type GraphConfig struct {
	URI      string `yaml:"uri" mapstructure:"uri"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
	Database string `yaml:"database" mapstructure:"database"`
	// RateLimit caps records written per second; 0 is unlimited
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Flatten: FlattenConfig{
			Variant:            VariantFull,
			MaxDepth:           10,
			DefaultRecordType:  "Census",
			PlaceFillers:       []string{"Ky", "-"},
			DocumentPlaceLimit: 3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".censusflat-cache",
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Suffix: "-simple",
		},
		Graph: GraphConfig{
			URI:      "neo4j://localhost:7687",
			User:     "neo4j",
			Database: "neo4j",
		},
	}
}
