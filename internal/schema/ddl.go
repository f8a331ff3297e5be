package schema

import (
	"fmt"
	"strings"
)

var typeMap = map[string]string{
	"varchar": "TEXT", "text": "TEXT", "char": "TEXT",
	"int": "INTEGER", "integer": "INTEGER", "bigint": "INTEGER", "smallint": "INTEGER",
	"real": "REAL", "double": "REAL", "float": "REAL",
	"decimal": "NUMERIC", "numeric": "NUMERIC",
	"boolean": "INTEGER", "bool": "INTEGER",
	"date": "TEXT", "datetime": "TEXT", "timestamp": "TEXT",
	"blob": "BLOB",
}

// ColumnType maps a declared field type onto a storage type.
func ColumnType(fieldType string) string {
	if mapped, ok := typeMap[strings.ToLower(fieldType)]; ok {
		return mapped
	}
	return strings.ToUpper(fieldType)
}

// DDL renders the CREATE TABLE statement for a table: column definitions with
// inline constraints, then a composite PRIMARY KEY clause when declared, then
// table-level composite FOREIGN KEY clauses. The inline PRIMARY KEY is omitted
// when a composite key is declared.
func DDL(t *Table) string {
	compositePK := t.CompositePrimaryKey()

	var defs []string
	for _, f := range t.Fields {
		parts := []string{f.Name, ColumnType(f.Type)}

		if f.NotNull {
			parts = append(parts, "NOT NULL")
		}
		if f.Unique {
			parts = append(parts, "UNIQUE")
		}
		if compositePK == nil && f.PrimaryKey {
			parts = append(parts, "PRIMARY KEY")
		}
		if f.ForeignKey != nil {
			if ref, err := ParseRef(f.ForeignKey.References); err == nil {
				parts = append(parts, fmt.Sprintf("REFERENCES %s(%s)", ref.Table, ref.Column))
			}
		}

		defs = append(defs, strings.Join(parts, " "))
	}

	if compositePK != nil {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(compositePK, ", ")))
	}

	for _, cfk := range t.CompositeForeignKeys {
		defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s",
			strings.Join(cfk.Fields, ", "), cfk.References))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n    %s\n);", t.Name, strings.Join(defs, ",\n    "))
}
