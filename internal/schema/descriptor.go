// Package schema holds the schema descriptor: an immutable mapping from
// table name to its ordered column list. The descriptor is supplied by
// configuration (CUE files) and consumed by the translator for table
// selection and help text only; it carries no types or constraints.
package schema

import (
	"fmt"
	"strings"
)

// Table is one table's name and ordered column list.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// Counts configures how many rows the sample-data generator produces per
// table. Zero values fall back to the defaults from the embedded config.
type Counts struct {
	Patients      int `json:"patients"`
	Doctors       int `json:"doctors"`
	Appointments  int `json:"appointments"`
	Medications   int `json:"medications"`
	Prescriptions int `json:"prescriptions"`
}

// Descriptor is the loaded schema: tables in declaration order plus the
// generator counts. Built once at startup and read-only thereafter.
type Descriptor struct {
	tables []Table
	byName map[string]int
	counts Counts
}

// NewDescriptor builds a descriptor from an ordered table list.
// Returns an error on empty or duplicate table names and on duplicate
// columns within a table; these are configuration errors and fatal.
func NewDescriptor(tables []Table, counts Counts) (*Descriptor, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("schema has no tables")
	}
	byName := make(map[string]int, len(tables))
	for i, tbl := range tables {
		if tbl.Name == "" {
			return nil, fmt.Errorf("table %d has an empty name", i)
		}
		if _, dup := byName[tbl.Name]; dup {
			return nil, fmt.Errorf("duplicate table %q", tbl.Name)
		}
		if len(tbl.Columns) == 0 {
			return nil, fmt.Errorf("table %q has no columns", tbl.Name)
		}
		seen := make(map[string]bool, len(tbl.Columns))
		for _, col := range tbl.Columns {
			if col == "" {
				return nil, fmt.Errorf("table %q has an empty column name", tbl.Name)
			}
			if seen[col] {
				return nil, fmt.Errorf("table %q: duplicate column %q", tbl.Name, col)
			}
			seen[col] = true
		}
		byName[tbl.Name] = i
	}
	return &Descriptor{tables: tables, byName: byName, counts: counts}, nil
}

// Tables returns the tables in declaration order.
func (d *Descriptor) Tables() []Table {
	out := make([]Table, len(d.tables))
	copy(out, d.tables)
	return out
}

// Has reports whether the descriptor contains the named table.
func (d *Descriptor) Has(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// Columns returns the ordered column list for a table, or nil if the
// table is not in the descriptor.
func (d *Descriptor) Columns(name string) []string {
	i, ok := d.byName[name]
	if !ok {
		return nil
	}
	out := make([]string, len(d.tables[i].Columns))
	copy(out, d.tables[i].Columns)
	return out
}

// Counts returns the configured generator row counts.
func (d *Descriptor) Counts() Counts {
	return d.counts
}

// Summary renders a one-line human-readable schema description:
//
//	patients(patient_id, name, age, gender, blood_type); doctors(...)
func (d *Descriptor) Summary() string {
	parts := make([]string, 0, len(d.tables))
	for _, tbl := range d.tables {
		parts = append(parts, fmt.Sprintf("%s(%s)", tbl.Name, strings.Join(tbl.Columns, ", ")))
	}
	return strings.Join(parts, "; ")
}
