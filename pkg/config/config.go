// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// ⏲️ CacheTTLs holds per-space TTL overrides as duration strings
// (e.g. "30m", "24h"). Empty fields keep the built-in defaults.
type CacheTTLs struct {
	Tree       string `json:"tree,omitempty" yaml:"tree,omitempty" hcl:"tree,optional"`
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty" hcl:"repository,optional"`
	File       string `json:"file,omitempty" yaml:"file,omitempty" hcl:"file,optional"`
	Blob       string `json:"blob,omitempty" yaml:"blob,omitempty" hcl:"blob,optional"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Token    string     `json:"token,omitempty" yaml:"token,omitempty" hcl:"token,optional"`
	BaseURL  string     `json:"base_url,omitempty" yaml:"base_url,omitempty" hcl:"base_url,optional"`
	NoCache  bool       `json:"no_cache,omitempty" yaml:"no_cache,omitempty" hcl:"no_cache,optional"`
	CacheTTL *CacheTTLs `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty" hcl:"cache_ttl,block"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.BaseURL != "" && !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return errors.Errorf("base_url must be an http(s) URL: %s", cfg.BaseURL)
	}
	if cfg.CacheTTL != nil {
		for name, value := range map[string]string{
			"tree":       cfg.CacheTTL.Tree,
			"repository": cfg.CacheTTL.Repository,
			"file":       cfg.CacheTTL.File,
			"blob":       cfg.CacheTTL.Blob,
		} {
			if value == "" {
				continue
			}
			if _, err := time.ParseDuration(value); err != nil {
				return errors.Errorf("cache_ttl.%s: invalid duration %q: %w", name, value, err)
			}
		}
	}
	return nil
}

// 🔑 ResolveToken applies the token precedence order: explicit flag value,
// then config file, then GITHUB_TOKEN environment, then none. Resolution
// happens once; nothing reads the environment after this.
func (cfg *Config) ResolveToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	if cfg.Token != "" {
		return cfg.Token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// parseTTL returns the parsed duration, or zero when unset. Validate
// catches malformed values, so errors here collapse to "use the default".
func parseTTL(value string) time.Duration {
	if value == "" {
		return 0
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

// ⏲️ TTLs returns the parsed per-space durations; zeros mean defaults.
func (cfg *Config) TTLs() (tree, repository, file, blob time.Duration) {
	if cfg.CacheTTL == nil {
		return 0, 0, 0, 0
	}
	return parseTTL(cfg.CacheTTL.Tree),
		parseTTL(cfg.CacheTTL.Repository),
		parseTTL(cfg.CacheTTL.File),
		parseTTL(cfg.CacheTTL.Blob)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
