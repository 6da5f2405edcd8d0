// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the dataset store so queries
// never spell identifiers inline.
package schema

// HistoricalGroupTable represents the 'chronicle.historicalgroup' table
type HistoricalGroupTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Ordinal     string
}

// HistoricalGroup is the schema definition for chronicle.historicalgroup
var HistoricalGroup = HistoricalGroupTable{
	Table:       "chronicle.historicalgroup",
	ID:          "id",
	Name:        "name",
	Description: "description",
	Ordinal:     "ordinal",
}

func (t HistoricalGroupTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description}
}
