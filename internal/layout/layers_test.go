// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/internal/layout"
)

func multiContextEntities() []chronicle.PoliticalEntity {
	return []chronicle.PoliticalEntity{
		{ID: "franks", Name: "Franks", Periods: []chronicle.EntityPeriod{
			{ID: "kf", StartYear: 481, EndYear: 843, Contexts: []chronicle.EntityContextRole{
				{GroupID: "g1", Role: chronicle.RoleSecondary, HeightIndex: 1, RowSpan: 1},
				{GroupID: "g2", Role: chronicle.RoleNucleus, HeightIndex: 0, RowSpan: 2},
			}},
		}},
		{ID: "austrasia", Name: "Austrasia", Periods: []chronicle.EntityPeriod{
			{ID: "a1", StartYear: 511, EndYear: 555, Contexts: band("g1", chronicle.RoleTertiary, 4, 0)},
			{ID: "a2", StartYear: 561, EndYear: 613, Contexts: band("g3", chronicle.RoleTertiary, 5, 1)},
		}},
	}
}

/*
TestResolveLayers verifies one instance per period, the winning context and the row bookkeeping.
*/
func TestResolveLayers(t *testing.T) {
	tests := []struct {
		name      string
		active    []string
		hidden    []string
		instances []string
		maxIndex  int
	}{
		{"nothing_active", nil, nil, nil, -1},
		{"g1_only", []string{"g1"}, nil, []string{"kf", "a1"}, 4},
		{"g1_and_g2_no_duplicates", []string{"g1", "g2"}, nil, []string{"kf", "a1"}, 4},
		{"g2_spans_two_rows", []string{"g2"}, nil, []string{"kf"}, 1},
		{"hidden_entity_skipped", []string{"g1", "g3"}, []string{"austrasia"}, []string{"kf"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := layout.ResolveLayers(multiContextEntities(), chronicle.NewIDSet(tt.active...), chronicle.NewIDSet(tt.hidden...))

			var ids []string
			for _, instance := range table.Instances {
				ids = append(ids, instance.PeriodID)
			}
			assert.Equal(t, tt.instances, ids)
			assert.Equal(t, tt.maxIndex, table.MaxLayerIndex())
			assert.Equal(t, tt.maxIndex+1, table.LayerCount())
		})
	}
}

/*
TestResolveLayers_HighestPriorityContextWins keeps the Nucleus band of a period listed in two active groups.
*/
func TestResolveLayers_HighestPriorityContextWins(t *testing.T) {
	table := layout.ResolveLayers(multiContextEntities(), chronicle.NewIDSet("g1", "g2"), nil)
	require.NotEmpty(t, table.Instances)

	franks := table.Instances[0]
	assert.Equal(t, "g2", franks.Context.GroupID)
	assert.Equal(t, chronicle.RoleNucleus, franks.Context.Role)
	assert.Equal(t, 0, franks.Context.HeightIndex)

	assert.True(t, table.HasEntity("austrasia"))
	assert.False(t, table.HasEntity("missing"))
}

/*
TestResolveRole walks the priority ladder and the context isolation rule.
*/
func TestResolveRole(t *testing.T) {
	entities := map[string]chronicle.PoliticalEntity{}
	for _, id := range []string{"n", "s", "t"} {
		entities[id] = chronicle.PoliticalEntity{ID: id, Periods: []chronicle.EntityPeriod{
			{ID: id + "1", StartYear: 500, EndYear: 600, Contexts: band("g1", chronicle.RoleNucleus, 0, 1)},
		}}
	}
	entities["elsewhere"] = chronicle.PoliticalEntity{ID: "elsewhere", Periods: []chronicle.EntityPeriod{
		{ID: "x", StartYear: 500, EndYear: 600, Contexts: band("g9", chronicle.RoleNucleus, 0, 1)},
	}}
	entities["before"] = chronicle.PoliticalEntity{ID: "before", Periods: []chronicle.EntityPeriod{
		{ID: "b", StartYear: 300, EndYear: 400, Contexts: band("g1", chronicle.RoleNucleus, 0, 1)},
	}}

	nucleus := heldTitle("tn", "n", chronicle.RoleNucleus, chronicle.RankKing, 520, 530)
	secondary := heldTitle("ts", "s", chronicle.RoleSecondary, chronicle.RankDuke, 520, 530)
	tertiary := heldTitle("tt", "t", chronicle.RoleTertiary, chronicle.RankCount, 520, 530)

	tests := []struct {
		name   string
		titles []chronicle.Title
		want   chronicle.Role
	}{
		{"nucleus_beats_all", []chronicle.Title{tertiary, secondary, nucleus}, chronicle.RoleNucleus},
		{"secondary_beats_tertiary", []chronicle.Title{tertiary, secondary}, chronicle.RoleSecondary},
		{"tertiary_only", []chronicle.Title{tertiary}, chronicle.RoleTertiary},
		{"no_titles_uses_default", nil, chronicle.RoleSecondary},
		{"inactive_context_ignored", []chronicle.Title{heldTitle("x", "elsewhere", chronicle.RoleNucleus, chronicle.RankKing, 520, 530)}, chronicle.RoleSecondary},
		{"entity_outside_lifespan_ignored", []chronicle.Title{heldTitle("b", "before", chronicle.RoleNucleus, chronicle.RankKing, 350, 360)}, chronicle.RoleSecondary},
		{"dangling_entity_ignored", []chronicle.Title{heldTitle("d", "ghost", chronicle.RoleNucleus, chronicle.RankKing, 520, 530)}, chronicle.RoleSecondary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := chronicle.Person{ID: "p", BirthYear: 500, DeathYear: 560, Role: chronicle.RoleSecondary, Titles: tt.titles}
			assert.Equal(t, tt.want, layout.ResolveRole(p, chronicle.NewIDSet("g1"), entities))
		})
	}
}

/*
TestIsVisible applies the draw rule in order: hidden, forced, then the role toggles.
*/
func TestIsVisible(t *testing.T) {
	settings := chronicle.DefaultViewSettings(10)
	withSecondary := settings
	withSecondary.ShowSecondary = true
	forced := settings.WithForceVisible("p")

	tests := []struct {
		name     string
		hidden   bool
		role     chronicle.Role
		settings chronicle.ViewSettings
		want     bool
	}{
		{"nucleus_always", false, chronicle.RoleNucleus, settings, true},
		{"secondary_off", false, chronicle.RoleSecondary, settings, false},
		{"secondary_on", false, chronicle.RoleSecondary, withSecondary, true},
		{"tertiary_off", false, chronicle.RoleTertiary, withSecondary, false},
		{"forced", false, chronicle.RoleTertiary, forced, true},
		{"hidden_beats_forced", true, chronicle.RoleNucleus, forced, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := chronicle.Person{ID: "p", IsHidden: tt.hidden}
			assert.Equal(t, tt.want, layout.IsVisible(p, tt.role, tt.settings))
		})
	}
}

/*
TestEngine_EntityVisible distinguishes hidden, inactive and drawn entities.
*/
func TestEngine_EntityVisible(t *testing.T) {
	in := scenarioInput()
	in.HiddenEntityIDs = []string{"F"}
	engine := mustEngine(t, in)

	assert.True(t, engine.EntityVisible("E"))
	assert.False(t, engine.EntityVisible("F"))

	in.HiddenEntityIDs = nil
	assert.False(t, mustEngine(t, in).EntityVisible("F"), "F has no G1 context")
}
