package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the study configuration schema: the knobs a research team
// adapts per study without touching code. Flags override file values.
type FileConfig struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`

	Search struct {
		Delay    time.Duration `yaml:"delay" json:"delay"`
		PageSize int           `yaml:"pageSize" json:"pageSize"`
		File     string        `yaml:"file" json:"file"`
	} `yaml:"search" json:"search"`

	Fetch struct {
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
		UserAgent string        `yaml:"userAgent" json:"userAgent"`
	} `yaml:"fetch" json:"fetch"`

	Queries  []string `yaml:"queries" json:"queries"`
	Keywords []string `yaml:"keywords" json:"keywords"`

	Filter struct {
		HostDeny []string `yaml:"hostDeny" json:"hostDeny"`
		ExtDeny  []string `yaml:"extDeny" json:"extDeny"`
	} `yaml:"filter" json:"filter"`

	Snippets struct {
		Max    int `yaml:"max" json:"max"`
		MaxLen int `yaml:"maxLen" json:"maxLen"`
	} `yaml:"snippets" json:"snippets"`

	Country   string `yaml:"country" json:"country"`
	DigestPDF bool   `yaml:"digestPDF" json:"digestPDF"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays file values into cfg for fields still at their
// zero value, letting explicit flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.InputPath == "" && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if cfg.OutputRoot == "" && fc.Output != "" {
		cfg.OutputRoot = fc.Output
	}
	if cfg.SearchDelay == 0 && fc.Search.Delay > 0 {
		cfg.SearchDelay = fc.Search.Delay
	}
	if cfg.PageSize == 0 && fc.Search.PageSize > 0 {
		cfg.PageSize = fc.Search.PageSize
	}
	if cfg.FileSearchPath == "" && fc.Search.File != "" {
		cfg.FileSearchPath = fc.Search.File
	}
	if cfg.FetchTimeout == 0 && fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = fc.Fetch.Timeout
	}
	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if len(cfg.QueryTemplates) == 0 && len(fc.Queries) > 0 {
		cfg.QueryTemplates = append([]string{}, fc.Queries...)
	}
	if len(cfg.Keywords) == 0 && len(fc.Keywords) > 0 {
		cfg.Keywords = append([]string{}, fc.Keywords...)
	}
	if len(cfg.HostDeny) == 0 && len(fc.Filter.HostDeny) > 0 {
		cfg.HostDeny = append([]string{}, fc.Filter.HostDeny...)
	}
	if len(cfg.ExtDeny) == 0 && len(fc.Filter.ExtDeny) > 0 {
		cfg.ExtDeny = append([]string{}, fc.Filter.ExtDeny...)
	}
	if cfg.MaxSnippets == 0 && fc.Snippets.Max > 0 {
		cfg.MaxSnippets = fc.Snippets.Max
	}
	if cfg.MaxSnippetLen == 0 && fc.Snippets.MaxLen > 0 {
		cfg.MaxSnippetLen = fc.Snippets.MaxLen
	}
	if cfg.DefaultCountry == "" && fc.Country != "" {
		cfg.DefaultCountry = fc.Country
	}
	if !cfg.DigestPDF && fc.DigestPDF {
		cfg.DigestPDF = true
	}
}
