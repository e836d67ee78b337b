// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/codec.go
// Summary: Reads and writes config documents as YAML, or JSON for .json files.

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func isJSON(path string) bool { return strings.EqualFold(filepath.Ext(path), ".json") }

// Decode parses a document. JSON is a subset of YAML, so only the hint
// decides which error messages the caller sees. Nested mappings come back
// as Section whichever decoder produced them.
func Decode(data []byte, asJSON bool) (Config, error) {
	var cfg Config
	if asJSON {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return normalize(cfg), nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return normalize(cfg), nil
}

func normalize(cfg Config) Config {
	if cfg == nil {
		return Config{}
	}
	return Clone(cfg)
}

// Encode renders a document in the format its path implies.
func Encode(cfg Config, asJSON bool) ([]byte, error) {
	if asJSON {
		return json.MarshalIndent(cfg, "", "  ")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]interface{}(cfg)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFile decodes the document at path.
func ReadFile(path string) (Config, error) {
	cfg, _, err := readConfig(path)
	if err == nil && cfg == nil {
		err = fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	return cfg, err
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	cfg, err := Decode(data, isJSON(path))
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := Encode(cfg, isJSON(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
