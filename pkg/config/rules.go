// Copyright 2025 the rexname authors
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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📋 Rule is one rename rule in a batch file. Unset numeric fields inherit
// the command-line defaults.
type Rule struct {
	Name            string  `yaml:"name,omitempty" json:"name,omitempty" hcl:"name,label"`
	Pattern         string  `yaml:"pattern,omitempty" json:"pattern,omitempty" hcl:"pattern,optional"`
	Target          string  `yaml:"target,omitempty" json:"target,omitempty" hcl:"target,optional"`
	Simple          bool    `yaml:"simple,omitempty" json:"simple,omitempty" hcl:"simple,optional"`
	From            string  `yaml:"from,omitempty" json:"from,omitempty" hcl:"from,optional"`
	To              string  `yaml:"to,omitempty" json:"to,omitempty" hcl:"to,optional"`
	Except          string  `yaml:"except,omitempty" json:"except,omitempty" hcl:"except,optional"`
	CaseInsensitive bool    `yaml:"case_insensitive,omitempty" json:"case_insensitive,omitempty" hcl:"case_insensitive,optional"`
	Lower           bool    `yaml:"lower,omitempty" json:"lower,omitempty" hcl:"lower,optional"`
	Upper           bool    `yaml:"upper,omitempty" json:"upper,omitempty" hcl:"upper,optional"`
	Glob            bool    `yaml:"glob,omitempty" json:"glob,omitempty" hcl:"glob,optional"`
	Copy            bool    `yaml:"copy,omitempty" json:"copy,omitempty" hcl:"copy,optional"`
	IndexFirst      *int    `yaml:"index_first,omitempty" json:"index_first,omitempty" hcl:"index_first,optional"`
	IndexStep       *int    `yaml:"index_step,omitempty" json:"index_step,omitempty" hcl:"index_step,optional"`
	IndexDigits     *string `yaml:"index_digits,omitempty" json:"index_digits,omitempty" hcl:"index_digits,optional"`
	IndexPadWith    *string `yaml:"index_pad_with,omitempty" json:"index_pad_with,omitempty" hcl:"index_pad_with,optional"`
}

// 📚 RuleSet is the parsed content of a batch rule file
type RuleSet struct {
	Rules []Rule `yaml:"rules" json:"rules" hcl:"rule,block"`
}

// Options projects a rule onto a base Options value (the base carries the
// shared flags: test, quiet, directory). The result is validated like any
// command line.
func (r Rule) Options(base Options) (Options, error) {
	opts := base
	opts.Pattern = r.Pattern
	opts.Target = r.Target
	opts.Simple = r.Simple
	opts.From = r.From
	opts.To = r.To
	opts.Except = r.Except
	opts.CaseInsensitive = r.CaseInsensitive
	opts.Lower = r.Lower
	opts.Upper = r.Upper
	opts.Glob = r.Glob
	opts.Copy = r.Copy

	opts.Index = DefaultIndex()
	if r.IndexFirst != nil {
		opts.Index.First = *r.IndexFirst
	}
	if r.IndexStep != nil {
		opts.Index.Step = *r.IndexStep
	}
	if r.IndexDigits != nil {
		opts.Index.Digits = *r.IndexDigits
	}
	if r.IndexPadWith != nil {
		opts.Index.PadWith = *r.IndexPadWith
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Label returns a display name for the rule.
func (r Rule) Label(position int) string {
	if r.Name != "" {
		return r.Name
	}
	return "rule " + strconv.Itoa(position+1)
}

// LoadRules loads a batch rule file. The format is chosen by extension:
// .yaml/.yml, .json, .hcl; a bare .rexname file is tried as YAML first and
// HCL second.
func LoadRules(ctx context.Context, path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rule file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	base := filepath.Base(path)

	var rs *RuleSet
	if ext == ".rexname" || base == ".rexname" {
		rs, err = parseYAMLRules(data)
		if err != nil {
			var hclErr error
			rs, hclErr = parseHCLRules(data, path)
			if hclErr != nil {
				return nil, errors.Errorf("parsing %s as YAML or HCL: %w", base, err)
			}
		}
	} else {
		switch ext {
		case ".yaml", ".yml":
			rs, err = parseYAMLRules(data)
		case ".json":
			rs, err = parseJSONRules(data)
		case ".hcl":
			rs, err = parseHCLRules(data, path)
		default:
			return nil, errors.Errorf("unsupported rule file extension %q", ext)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(rs.Rules) == 0 {
		return nil, errors.Errorf("rule file %s defines no rules", base)
	}
	return rs, nil
}

func parseYAMLRules(data []byte) (*RuleSet, error) {
	var rs RuleSet
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rs); err != nil {
		return nil, errors.Errorf("parsing YAML rules: %w", err)
	}
	return &rs, nil
}

func parseJSONRules(data []byte) (*RuleSet, error) {
	var rs RuleSet
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&rs); err != nil {
		return nil, errors.Errorf("parsing JSON rules: %w", err)
	}
	return &rs, nil
}

func parseHCLRules(data []byte, filename string) (*RuleSet, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL rules: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var rs RuleSet
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &rs)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL rules: %s", diags.Error())
	}
	return &rs, nil
}
