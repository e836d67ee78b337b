// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/schema.go
// Summary: Prints every configurable property with its type, default and domain.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/internal/theming"
)

var schemaYAML bool

var schemaCmd = &cobra.Command{
	Use:   "schema [group...]",
	Short: "Print the theme property schema",
	Long: `Print the properties each effect, theme section and event override accepts.
Limit the output by naming groups, for example "texelfx schema rain events".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups := filterSchemas(theming.Schema(), args)
		if len(groups) == 0 {
			return fmt.Errorf("no schema group matches %s", strings.Join(args, ", "))
		}
		if schemaYAML {
			return writeSchemaYAML(cmd.OutOrStdout(), groups)
		}
		writeSchemaTables(cmd.OutOrStdout(), groups)
		return nil
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaYAML, "yaml", false, "Print YAML instead of tables")
}

func filterSchemas(all []*effects.Schema, names []string) []*effects.Schema {
	if len(names) == 0 {
		return all
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(n)] = true
	}
	var out []*effects.Schema
	for _, s := range all {
		if want[s.Group] {
			out = append(out, s)
		}
	}
	return out
}

var (
	groupStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7d7")).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func writeSchemaTables(w io.Writer, groups []*effects.Schema) {
	for _, s := range groups {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("property", "type", "default", "domain", "description").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for _, p := range s.Props {
			t.Row(p.Name, p.Type.String(), formatDefault(p.Default), p.Domain(), p.Doc)
		}
		fmt.Fprintln(w, groupStyle.Render(s.Group))
		fmt.Fprintln(w, t.Render())
	}
}

type yamlProperty struct {
	Name    string      `yaml:"name"`
	Type    string      `yaml:"type"`
	Default interface{} `yaml:"default,omitempty"`
	Domain  string      `yaml:"domain,omitempty"`
	Doc     string      `yaml:"doc,omitempty"`
}

type yamlGroup struct {
	Group      string         `yaml:"group"`
	Properties []yamlProperty `yaml:"properties"`
}

func writeSchemaYAML(w io.Writer, groups []*effects.Schema) error {
	out := make([]yamlGroup, 0, len(groups))
	for _, s := range groups {
		g := yamlGroup{Group: s.Group}
		for _, p := range s.Props {
			g.Properties = append(g.Properties, yamlProperty{
				Name:    p.Name,
				Type:    p.Type.String(),
				Default: yamlDefault(p.Default),
				Domain:  p.Domain(),
				Doc:     p.Doc,
			})
		}
		out = append(out, g)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

func yamlDefault(v interface{}) interface{} {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return v
}

func formatDefault(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(yamlDefault(v))
}
