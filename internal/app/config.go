package app

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lattice-search/lattice/internal/domain/rolegraph"
	"github.com/lattice-search/lattice/internal/domain/scorer"
)

// RoleConfig declares one role: where its thesaurus comes from and how
// its graph scores.
type RoleConfig struct {
	Name string `yaml:"name"`
	// KGPath is a directory of markdown concept files. Mutually
	// exclusive with ThesaurusURL and ThesaurusFile.
	KGPath string `yaml:"kg_path,omitempty"`
	// ThesaurusURL points at a pre-built remote JSON thesaurus.
	ThesaurusURL string `yaml:"thesaurus_url,omitempty"`
	// ThesaurusFile points at a pre-built local JSON thesaurus.
	ThesaurusFile string `yaml:"thesaurus_file,omitempty"`
	// Scorer selects the relevance function (default: terraphim-graph).
	Scorer scorer.Kind `yaml:"scorer,omitempty"`
	// Granularity selects co-occurrence scope: "document" (default) or
	// "paragraph".
	Granularity string `yaml:"granularity,omitempty"`
}

// Config is the engine configuration file.
type Config struct {
	// CachePath is the bbolt snapshot database. Defaults to
	// .lattice/cache.db under the config file's directory.
	CachePath string       `yaml:"cache_path,omitempty"`
	Roles     []RoleConfig `yaml:"roles"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.Roles) == 0 {
		return nil, fmt.Errorf("%s: no roles defined", path)
	}
	for i := range cfg.Roles {
		r := &cfg.Roles[i]
		if r.Name == "" {
			return nil, fmt.Errorf("%s: role %d has no name", path, i)
		}
		sources := 0
		for _, s := range []string{r.KGPath, r.ThesaurusURL, r.ThesaurusFile} {
			if s != "" {
				sources++
			}
		}
		if sources != 1 {
			return nil, fmt.Errorf("%s: role %q needs exactly one of kg_path, thesaurus_url, thesaurus_file", path, r.Name)
		}
		if r.Scorer == "" {
			r.Scorer = scorer.KindGraph
		}
		switch r.Granularity {
		case "", "document", "paragraph":
		default:
			return nil, fmt.Errorf("%s: role %q: unknown granularity %q", path, r.Name, r.Granularity)
		}
	}
	if cfg.CachePath == "" {
		cfg.CachePath = filepath.Join(filepath.Dir(path), ".lattice", "cache.db")
	}
	return &cfg, nil
}

// Role returns the config for a named role.
func (c *Config) Role(name string) (*RoleConfig, error) {
	for i := range c.Roles {
		if c.Roles[i].Name == name {
			return &c.Roles[i], nil
		}
	}
	return nil, fmt.Errorf("role %q not found in config", name)
}

// granularity maps the config string to the graph option.
func (r *RoleConfig) granularity() rolegraph.Granularity {
	if r.Granularity == "paragraph" {
		return rolegraph.GranularityParagraph
	}
	return rolegraph.GranularityDocument
}
