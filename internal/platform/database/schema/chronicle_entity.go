// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PoliticalEntityTable represents the 'chronicle.politicalentity' table.
// Periods, with their contexts and vassalage, are stored as one jsonb document.
type PoliticalEntityTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Periods     string
	Ordinal     string
}

// PoliticalEntity is the schema definition for chronicle.politicalentity
var PoliticalEntity = PoliticalEntityTable{
	Table:       "chronicle.politicalentity",
	ID:          "id",
	Name:        "name",
	Description: "description",
	Periods:     "periods",
	Ordinal:     "ordinal",
}

func (t PoliticalEntityTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.Periods}
}
