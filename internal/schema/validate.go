package schema

import "fmt"

// Validate checks the parsed schema for structural problems: duplicate table
// names, dangling foreign key references, composite keys naming fields the
// table does not have, and distribution parameters on non-numeric fields.
func Validate(tables []Table) error {
	byName := make(map[string]*Table, len(tables))
	for i := range tables {
		t := &tables[i]
		if _, exists := byName[t.Name]; exists {
			return &Error{Kind: KindDuplicateTable, Table: t.Name}
		}
		byName[t.Name] = t
	}

	for i := range tables {
		t := &tables[i]

		for _, f := range t.Fields {
			if f.HasDistribution() && !f.IsNumeric() {
				return &Error{
					Kind: KindInvalidField, Table: t.Name, Field: f.Name,
					Detail: fmt.Sprintf("distribution parameters on non-numeric type %q", f.Type),
				}
			}
			if f.FakeData != "" && f.ForeignKey != nil {
				return &Error{
					Kind: KindInvalidField, Table: t.Name, Field: f.Name,
					Detail: "fake_data and foreign_key are mutually exclusive",
				}
			}
			if f.ForeignKey != nil {
				ref, err := ParseRef(f.ForeignKey.References)
				if err != nil {
					return &Error{Kind: KindUnknownReference, Table: t.Name, Field: f.Name, Detail: err.Error()}
				}
				parent, ok := byName[ref.Table]
				if !ok {
					return &Error{
						Kind: KindUnknownReference, Table: t.Name, Field: f.Name,
						Detail: fmt.Sprintf("references missing table %s", ref.Table),
					}
				}
				if parent.Field(ref.Column) == nil {
					return &Error{
						Kind: KindUnknownReference, Table: t.Name, Field: f.Name,
						Detail: fmt.Sprintf("references missing column %s(%s)", ref.Table, ref.Column),
					}
				}
			}
		}

		if pk := t.CompositePrimaryKey(); pk != nil {
			for _, name := range pk {
				if t.Field(name) == nil {
					return &Error{
						Kind: KindUnknownField, Table: t.Name, Field: name,
						Detail: "composite primary key names a field the table does not declare",
					}
				}
			}
		}

		if cfk := t.CompositeForeignKey(); cfk != nil {
			for _, name := range cfk.Fields {
				if t.Field(name) == nil {
					return &Error{
						Kind: KindUnknownField, Table: t.Name, Field: name,
						Detail: "composite foreign key names a field the table does not declare",
					}
				}
			}
			parent, ok := byName[cfk.References]
			if !ok {
				return &Error{
					Kind: KindUnknownReference, Table: t.Name,
					Detail: fmt.Sprintf("composite foreign key references missing table %s", cfk.References),
				}
			}
			parentKey := parent.CompositePrimaryKey()
			if parentKey == nil {
				return &Error{
					Kind: KindUnknownReference, Table: t.Name,
					Detail: fmt.Sprintf("composite foreign key references %s, which declares no composite primary key", cfk.References),
				}
			}
			if len(parentKey) != len(cfk.Fields) {
				return &Error{
					Kind: KindUnknownReference, Table: t.Name,
					Detail: fmt.Sprintf("composite foreign key has %d fields but %s's primary key has %d",
						len(cfk.Fields), cfk.References, len(parentKey)),
				}
			}
		}
	}

	return nil
}
