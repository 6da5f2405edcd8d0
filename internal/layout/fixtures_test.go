// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/internal/layout"
	"github.com/taibuivan/reignline/pkg/pointer"
)

func band(group string, role chronicle.Role, height, span int) []chronicle.EntityContextRole {
	return []chronicle.EntityContextRole{{GroupID: group, Role: role, HeightIndex: height, RowSpan: span}}
}

func heldTitle(id, entityID string, role chronicle.Role, rank chronicle.Rank, start, end int) chronicle.Title {
	return chronicle.Title{
		ID:       id,
		Name:     id,
		EntityID: entityID,
		Rank:     pointer.To(rank),
		Role:     role,
		Periods:  []chronicle.TitlePeriod{{StartYear: start, EndYear: end}},
	}
}

// scenarioInput is the reference world: entity E in context g1 at height 1,
// entity F only in context g2 at height 2, and one Nucleus king of E.
func scenarioInput() layout.Input {
	return layout.Input{
		Entities: []chronicle.PoliticalEntity{
			{ID: "E", Name: "Entity E", Periods: []chronicle.EntityPeriod{
				{ID: "e1", StartYear: 510, EndYear: 550, Color: "#059669", Contexts: band("G1", chronicle.RoleNucleus, 1, 1)},
			}},
			{ID: "F", Name: "Entity F", Periods: []chronicle.EntityPeriod{
				{ID: "f1", StartYear: 400, EndYear: 700, Color: "#1e40af", Contexts: band("G2", chronicle.RoleSecondary, 2, 1)},
			}},
		},
		Dynasties: []chronicle.Dynasty{{ID: "merovingian", Name: "Merovingian", Color: "#10b981"}},
		People: []chronicle.Person{{
			ID: "king", OfficialName: "King", DynastyID: "merovingian",
			BirthYear: 500, DeathYear: 560,
			Role:             chronicle.RoleSecondary,
			VerticalPosition: 1,
			Titles:           []chronicle.Title{heldTitle("t1", "E", chronicle.RoleNucleus, chronicle.RankKing, 510, 550)},
		}},
		ActiveContextIDs: []string{"G1"},
		HiddenEntityIDs:  []string{},
		Settings:         chronicle.DefaultViewSettings(10),
		MinYear:          450,
		MaxYear:          700,
	}
}

// familyInput has a father, a mother, a child and a one-sided marriage.
func familyInput() layout.Input {
	in := layout.Input{
		Entities: []chronicle.PoliticalEntity{
			{ID: "franks", Name: "Franks", Periods: []chronicle.EntityPeriod{
				{ID: "kf", StartYear: 481, EndYear: 600, Contexts: band("g1", chronicle.RoleNucleus, 0, 1)},
			}},
		},
		Dynasties: []chronicle.Dynasty{{ID: "merovingian", Name: "Merovingian", Color: "#10b981"}},
		People: []chronicle.Person{
			{
				ID: "clovis", OfficialName: "Clovis I", DynastyID: "merovingian", BirthYear: 466, DeathYear: 511,
				Role:   chronicle.RoleNucleus,
				Titles: []chronicle.Title{heldTitle("t1", "franks", chronicle.RoleNucleus, chronicle.RankKing, 481, 511)},
			},
			{ID: "clotilde", OfficialName: "Clotilde", BirthYear: 474, DeathYear: 545, Role: chronicle.RoleNucleus, SpouseIDs: []string{"clovis"}},
			{
				ID: "chlothar", OfficialName: "Chlothar I", DynastyID: "merovingian", BirthYear: 497, DeathYear: 561,
				FatherID: "clovis", MotherID: "clotilde", Role: chronicle.RoleNucleus, VerticalPosition: 1,
			},
		},
		ActiveContextIDs: []string{"g1"},
		Settings:         chronicle.DefaultViewSettings(10),
		MinYear:          450,
		MaxYear:          650,
	}
	return in
}

func mustEngine(t *testing.T, in layout.Input) *layout.Engine {
	t.Helper()
	engine, err := layout.New(in)
	require.NoError(t, err)
	return engine
}

func person(t *testing.T, in layout.Input, id string) chronicle.Person {
	t.Helper()
	for _, p := range in.People {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("person %q not in fixture", id)
	return chronicle.Person{}
}
