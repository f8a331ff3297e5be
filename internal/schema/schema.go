package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is one table definition from the schema document. Field order is
// preserved from the document; it drives both DDL column order and the
// positional mapping of composite keys.
type Table struct {
	Name                 string                `json:"table_name" yaml:"table_name"`
	Fields               []Field               `json:"fields" yaml:"fields"`
	CompositePrimaryKeys []CompositeKey        `json:"composite_primary_keys,omitempty" yaml:"composite_primary_keys,omitempty"`
	CompositeForeignKeys []CompositeForeignKey `json:"composite_foreign_keys,omitempty" yaml:"composite_foreign_keys,omitempty"`
}

type Field struct {
	Name       string          `json:"name" yaml:"name"`
	Type       string          `json:"type" yaml:"type"`
	PrimaryKey bool            `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	Unique     bool            `json:"unique,omitempty" yaml:"unique,omitempty"`
	NotNull    bool            `json:"not_null,omitempty" yaml:"not_null,omitempty"`
	FakeData   string          `json:"fake_data,omitempty" yaml:"fake_data,omitempty"`
	Mean       *float64        `json:"mean,omitempty" yaml:"mean,omitempty"`
	StdDev     *float64        `json:"stddev,omitempty" yaml:"stddev,omitempty"`
	Min        *float64        `json:"min,omitempty" yaml:"min,omitempty"`
	Max        *float64        `json:"max,omitempty" yaml:"max,omitempty"`
	ForeignKey *ForeignKeySpec `json:"foreign_key,omitempty" yaml:"foreign_key,omitempty"`
}

type CompositeKey struct {
	Fields []string `json:"fields" yaml:"fields"`
}

type CompositeForeignKey struct {
	Fields     []string `json:"fields" yaml:"fields"`
	References string   `json:"references" yaml:"references"`
}

// ForeignKeySpec holds the raw "table(column)" reference string.
type ForeignKeySpec struct {
	References string `json:"references" yaml:"references"`
}

// Ref is a parsed single-column foreign key target.
type Ref struct {
	Table  string
	Column string
}

// ParseRef splits a "table(column)" reference.
func ParseRef(s string) (Ref, error) {
	open := strings.Index(s, "(")
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return Ref{}, fmt.Errorf("malformed foreign key reference %q, want \"table(column)\"", s)
	}
	return Ref{
		Table:  strings.TrimSpace(s[:open]),
		Column: strings.TrimSpace(s[open+1 : len(s)-1]),
	}, nil
}

// CompositePrimaryKey returns the table's composite primary key field list, or
// nil. Only the first definition counts; extras are ignored.
func (t *Table) CompositePrimaryKey() []string {
	if len(t.CompositePrimaryKeys) == 0 {
		return nil
	}
	return t.CompositePrimaryKeys[0].Fields
}

// CompositeForeignKey returns the table's composite foreign key, or nil. Only
// the first definition counts.
func (t *Table) CompositeForeignKey() *CompositeForeignKey {
	if len(t.CompositeForeignKeys) == 0 {
		return nil
	}
	return &t.CompositeForeignKeys[0]
}

// KeyColumns returns the realized key columns to read back after population:
// the composite primary key fields when declared, otherwise every field
// flagged primary_key.
func (t *Table) KeyColumns() []string {
	if pk := t.CompositePrimaryKey(); pk != nil {
		return pk
	}
	var cols []string
	for _, f := range t.Fields {
		if f.PrimaryKey {
			cols = append(cols, f.Name)
		}
	}
	return cols
}

// Field returns the named field, or nil.
func (t *Table) Field(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

var numericTypes = map[string]bool{
	"int": true, "integer": true, "bigint": true, "smallint": true,
	"float": true, "double": true, "real": true,
	"decimal": true, "numeric": true,
}

var integerTypes = map[string]bool{
	"int": true, "integer": true, "bigint": true, "smallint": true,
}

// IsNumeric reports whether the field's declared type admits the
// mean/stddev/min/max distribution parameters.
func (f *Field) IsNumeric() bool {
	return numericTypes[strings.ToLower(f.Type)]
}

// IsInteger reports whether generated values should be rounded to integers.
func (f *Field) IsInteger() bool {
	return integerTypes[strings.ToLower(f.Type)]
}

// HasDistribution reports whether any distribution parameter is set.
func (f *Field) HasDistribution() bool {
	return f.Mean != nil || f.StdDev != nil || f.Min != nil || f.Max != nil
}

// Load reads a schema document from a .json, .yaml or .yml file. The document
// is a list of table definitions.
func Load(path string) ([]Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var tables []Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &tables); err != nil {
			return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &tables); err != nil {
			return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported schema format %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}

	return tables, nil
}
