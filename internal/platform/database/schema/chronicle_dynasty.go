// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// DynastyTable represents the 'chronicle.dynasty' table
type DynastyTable struct {
	Table       string
	ID          string
	Name        string
	Color       string
	Description string
	Ordinal     string
}

// Dynasty is the schema definition for chronicle.dynasty
var Dynasty = DynastyTable{
	Table:       "chronicle.dynasty",
	ID:          "id",
	Name:        "name",
	Color:       "color",
	Description: "description",
	Ordinal:     "ordinal",
}

func (t DynastyTable) Columns() []string {
	return []string{t.ID, t.Name, t.Color, t.Description}
}
