// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chronicle_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/pkg/pointer"
)

/*
TestRole_Priority verifies the strict Nucleus > Secondary > Tertiary ordering.
*/
func TestRole_Priority(t *testing.T) {
	assert.True(t, chronicle.RoleNucleus.Outranks(chronicle.RoleSecondary))
	assert.True(t, chronicle.RoleSecondary.Outranks(chronicle.RoleTertiary))
	assert.False(t, chronicle.RoleTertiary.Outranks(chronicle.RoleTertiary))
	assert.Equal(t, chronicle.RoleTertiary, chronicle.Role(0))
}

/*
TestRole_Text checks the wire names in both directions and the rejection of unknown names.
*/
func TestRole_Text(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    chronicle.Role
		wantErr bool
	}{
		{"nucleus", "NUCLEUS", chronicle.RoleNucleus, false},
		{"lowercase", "secondary", chronicle.RoleSecondary, false},
		{"tertiary", "TERTIARY", chronicle.RoleTertiary, false},
		{"unknown", "EMPEROR", chronicle.RoleTertiary, true},
		{"empty", "", chronicle.RoleTertiary, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var role chronicle.Role
			err := role.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}

	var title chronicle.Title
	require.NoError(t, json.Unmarshal([]byte(`{"name":"King","entityId":"e","role":"NUCLEUS"}`), &title))
	assert.Equal(t, chronicle.RoleNucleus, title.Role)

	require.NoError(t, yaml.Unmarshal([]byte("name: Duke\nentityId: e\nrole: SECONDARY\n"), &title))
	assert.Equal(t, chronicle.RoleSecondary, title.Role)
}

/*
TestBestContext verifies priority-max selection with first-occurrence tie-breaking.
*/
func TestBestContext(t *testing.T) {
	contexts := []chronicle.EntityContextRole{
		{GroupID: "g1", Role: chronicle.RoleSecondary, HeightIndex: 1},
		{GroupID: "g2", Role: chronicle.RoleNucleus, HeightIndex: 2},
		{GroupID: "g3", Role: chronicle.RoleNucleus, HeightIndex: 3},
	}

	best, ok := chronicle.BestContext(contexts, chronicle.NewIDSet("g1", "g2", "g3"))
	require.True(t, ok)
	assert.Equal(t, 2, best.HeightIndex, "first nucleus wins the tie")

	best, ok = chronicle.BestContext(contexts, chronicle.NewIDSet("g1"))
	require.True(t, ok)
	assert.Equal(t, "g1", best.GroupID)

	_, ok = chronicle.BestContext(contexts, chronicle.NewIDSet("g9"))
	assert.False(t, ok)
}

/*
TestPerson_Spans covers lifespan, reign geometry and age computations.
*/
func TestPerson_Spans(t *testing.T) {
	person := chronicle.Person{
		ID: "p", BirthYear: 466, DeathYear: 511, BirthMonth: 6, DeathMonth: 3,
		Titles: []chronicle.Title{
			{Periods: []chronicle.TitlePeriod{{StartYear: 490, EndYear: 500}, {StartYear: 481, EndYear: 485}}},
			{Periods: []chronicle.TitlePeriod{{StartYear: 505, EndYear: 511}}},
		},
	}

	start, end := person.Lifespan()
	assert.Equal(t, [2]int{466, 511}, [2]int{start, end})

	start, end = person.ReignSpan()
	assert.Equal(t, [2]int{481, 511}, [2]int{start, end})

	assert.Equal(t, 44, person.AgeAtDeath())

	infant := chronicle.Person{BirthYear: 600, DeathYear: 600}
	start, end = infant.Lifespan()
	assert.Equal(t, [2]int{600, 601}, [2]int{start, end})

	untitled := chronicle.Person{BirthYear: 700, DeathYear: 750}
	start, end = untitled.ReignSpan()
	assert.Equal(t, [2]int{700, 750}, [2]int{start, end})
}

/*
TestPerson_Clone ensures mutations on a clone never leak into the original record.
*/
func TestPerson_Clone(t *testing.T) {
	original := chronicle.Person{
		ID:        "p",
		SpouseIDs: []string{"s"},
		Titles: []chronicle.Title{{
			Rank:    pointer.To(chronicle.RankKing),
			Periods: []chronicle.TitlePeriod{{StartYear: 1, EndYear: 2}},
		}},
	}

	clone := original.Clone()
	clone.SpouseIDs[0] = "x"
	clone.Titles[0].VerticalShift = 3
	clone.Titles[0].Periods[0].StartYear = 9
	*clone.Titles[0].Rank = chronicle.RankPope

	assert.Equal(t, "s", original.SpouseIDs[0])
	assert.Zero(t, original.Titles[0].VerticalShift)
	assert.Equal(t, 1, original.Titles[0].Periods[0].StartYear)
	assert.Equal(t, chronicle.RankKing, original.Titles[0].EffectiveRank())
	assert.Equal(t, chronicle.RankUnranked, chronicle.Title{}.EffectiveRank())
}

/*
TestFormatDate checks every precision level of the date label.
*/
func TestFormatDate(t *testing.T) {
	assert.Equal(t, "1815", chronicle.FormatDate(1815, 0, 0))
	assert.Equal(t, "Mar 1815", chronicle.FormatDate(1815, 3, 0))
	assert.Equal(t, "12 Mar 1815", chronicle.FormatDate(1815, 3, 12))
	assert.Equal(t, "1815", chronicle.FormatDate(1815, 13, 1))
}

/*
TestViewSettings_ForceVisible verifies the copy-on-write force-visible helpers.
*/
func TestViewSettings_ForceVisible(t *testing.T) {
	settings := chronicle.DefaultViewSettings(10)

	shown := settings.WithForceVisible("a", "b", "a")
	assert.Equal(t, []string{"a", "b"}, shown.ForceVisibleIDs)
	assert.Empty(t, settings.ForceVisibleIDs)
	assert.True(t, shown.IsForcedVisible("b"))

	hidden := shown.WithoutForceVisible("a", "b")
	assert.Equal(t, []string{}, hidden.ForceVisibleIDs)
	assert.Equal(t, []string{"a", "b"}, shown.ForceVisibleIDs)
}
