// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PersonTable represents the 'chronicle.person' table
type PersonTable struct {
	Table            string
	ID               string
	OfficialName     string
	RealName         string
	DynastyID        string
	Description      string
	ImageURL         string
	BirthYear        string
	BirthMonth       string
	BirthDay         string
	DeathYear        string
	DeathMonth       string
	DeathDay         string
	FatherID         string
	MotherID         string
	AdoptedParentID  string
	SpouseIDs        string
	Titles           string
	Role             string
	VerticalPosition string
	Color            string
	IsHidden         string
	Ordinal          string
}

// Person is the schema definition for chronicle.person
var Person = PersonTable{
	Table:            "chronicle.person",
	ID:               "id",
	OfficialName:     "officialname",
	RealName:         "realname",
	DynastyID:        "dynastyid",
	Description:      "description",
	ImageURL:         "imageurl",
	BirthYear:        "birthyear",
	BirthMonth:       "birthmonth",
	BirthDay:         "birthday",
	DeathYear:        "deathyear",
	DeathMonth:       "deathmonth",
	DeathDay:         "deathday",
	FatherID:         "fatherid",
	MotherID:         "motherid",
	AdoptedParentID:  "adoptedparentid",
	SpouseIDs:        "spouseids",
	Titles:           "titles",
	Role:             "role",
	VerticalPosition: "verticalposition",
	Color:            "color",
	IsHidden:         "ishidden",
	Ordinal:          "ordinal",
}

func (t PersonTable) Columns() []string {
	return []string{
		t.ID, t.OfficialName, t.RealName, t.DynastyID, t.Description, t.ImageURL,
		t.BirthYear, t.BirthMonth, t.BirthDay, t.DeathYear, t.DeathMonth, t.DeathDay,
		t.FatherID, t.MotherID, t.AdoptedParentID, t.SpouseIDs, t.Titles,
		t.Role, t.VerticalPosition, t.Color, t.IsHidden,
	}
}
