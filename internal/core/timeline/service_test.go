// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/internal/core/timeline"
	"github.com/taibuivan/reignline/internal/layout"
	"github.com/taibuivan/reignline/internal/platform/apperr"
	"github.com/taibuivan/reignline/pkg/pagination"
	"github.com/taibuivan/reignline/pkg/pointer"
)

func nodeIDs(scene *layout.Scene) []string {
	ids := make([]string, 0, len(scene.People))
	for _, node := range scene.People {
		ids = append(ids, node.ID)
	}
	return ids
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	return appErr.Code
}

/*
TestService_Scene_Memoizes serves repeated views from the cache and recomputes on change.
*/
func TestService_Scene_Memoizes(t *testing.T) {
	recorder := &fakeRecorder{}
	service, _, cache := newService(recorder)
	ctx := context.Background()

	first, status, err := service.Scene(ctx, activeG1())
	require.NoError(t, err)
	assert.Equal(t, "MISS", status)
	assert.ElementsMatch(t, []string{"clovis", "clotilde"}, nodeIDs(first))

	second, status, err := service.Scene(ctx, activeG1())
	require.NoError(t, err)
	assert.Equal(t, "HIT", status)
	assert.Same(t, first, second)

	zoomed := activeG1()
	settings := chronicle.DefaultViewSettings(20)
	zoomed.Settings = &settings
	_, status, err = service.Scene(ctx, zoomed)
	require.NoError(t, err)
	assert.Equal(t, "MISS", status)

	assert.Equal(t, 2, recorder.layouts)
	assert.Equal(t, 1, recorder.hits)
	assert.Equal(t, 2, recorder.misses)
	assert.Equal(t, 2, cache.Len())
}

/*
TestService_Scene_WithoutCache reports a bypass.
*/
func TestService_Scene_WithoutCache(t *testing.T) {
	service := timeline.NewService(timeline.NewMemoryRepository(franksDataset()), nil, nil, testOptions, discardLogger())

	scene, status, err := service.Scene(context.Background(), activeG1())
	require.NoError(t, err)
	assert.Equal(t, "BYPASS", status)
	assert.Equal(t, 450, scene.MinYear)
	assert.Equal(t, 650, scene.MaxYear)
}

/*
TestService_Scene_BrokenCacheStillComputes degrades to a plain layout pass.
*/
func TestService_Scene_BrokenCacheStillComputes(t *testing.T) {
	cache := &brokenCache{}
	service := timeline.NewService(timeline.NewMemoryRepository(franksDataset()), cache, nil, testOptions, discardLogger())

	scene, status, err := service.Scene(context.Background(), activeG1())
	require.NoError(t, err)
	assert.Equal(t, "MISS", status)
	assert.NotEmpty(t, scene.People)
	assert.Equal(t, 1, cache.sets)
}

/*
TestService_Scene_Validation rejects bad zoom and inverted or out-of-bounds years before loading data.
*/
func TestService_Scene_Validation(t *testing.T) {
	service, _, _ := newService(nil)

	tests := []struct {
		name  string
		view  timeline.ViewRequest
		field string
	}{
		{"zero_zoom", timeline.ViewRequest{Settings: &chronicle.ViewSettings{Zoom: 0}}, "settings.zoom"},
		{"negative_zoom", timeline.ViewRequest{Settings: &chronicle.ViewSettings{Zoom: -2}}, "settings.zoom"},
		{"inverted_years", timeline.ViewRequest{MinYear: pointer.To(600), MaxYear: pointer.To(500)}, "maxYear"},
		{"span_too_wide", timeline.ViewRequest{MinYear: pointer.To(0), MaxYear: pointer.To(20_000_000)}, "maxYear"},
		{"max_int_year", timeline.ViewRequest{MaxYear: pointer.To(math.MaxInt)}, "maxYear"},
		{"min_below_limit", timeline.ViewRequest{MinYear: pointer.To(-2_000_000), MaxYear: pointer.To(0)}, "minYear"},
		{"drag_without_person", timeline.ViewRequest{Drag: &layout.DragOffset{DeltaY: 10}}, "drag.personId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Scene(context.Background(), tt.view)
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			require.NotEmpty(t, appErr.Details)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

/*
TestService_Scene_Overrides applies client edits without touching the store.
*/
func TestService_Scene_Overrides(t *testing.T) {
	service, repo, _ := newService(nil)
	ctx := context.Background()

	dataset, _ := repo.Load(ctx)
	promoted := dataset.People[2].Clone()
	promoted.Role = chronicle.RoleNucleus

	view := activeG1()
	view.Overrides = []chronicle.Person{promoted, {ID: "stranger", OfficialName: "Nobody"}}

	scene, _, err := service.Scene(ctx, view)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"clovis", "clotilde", "chlothar"}, nodeIDs(scene))

	stored, err := service.Person(ctx, "chlothar")
	require.NoError(t, err)
	assert.Equal(t, chronicle.RoleSecondary, stored.Role)
}

/*
TestService_Scene_StoreFailure surfaces the repository error unchanged.
*/
func TestService_Scene_StoreFailure(t *testing.T) {
	service := timeline.NewService(failingRepository{err: apperr.ServiceUnavailable("down")}, nil, nil, testOptions, discardLogger())

	_, _, err := service.Scene(context.Background(), activeG1())
	assert.Equal(t, "SERVICE_UNAVAILABLE", errorCode(t, err))
	assert.Error(t, service.Ping(context.Background()))
}

/*
TestService_RoleAndVisibility resolves roles against the requested contexts.
*/
func TestService_RoleAndVisibility(t *testing.T) {
	service, _, _ := newService(nil)
	ctx := context.Background()

	role, err := service.Role(ctx, "clovis", activeG1())
	require.NoError(t, err)
	assert.Equal(t, chronicle.RoleNucleus, role.EffectiveRole)

	role, err = service.Role(ctx, "chlothar", activeG1())
	require.NoError(t, err)
	assert.Equal(t, chronicle.RoleSecondary, role.EffectiveRole)

	visibility, err := service.Visibility(ctx, "chlothar", activeG1())
	require.NoError(t, err)
	assert.False(t, visibility.Visible)

	view := activeG1()
	settings := chronicle.DefaultViewSettings(10)
	settings.ShowSecondary = true
	view.Settings = &settings
	visibility, err = service.Visibility(ctx, "chlothar", view)
	require.NoError(t, err)
	assert.True(t, visibility.Visible)

	_, err = service.Role(ctx, "nobody", activeG1())
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

/*
TestService_Move adjusts the anchoring title or the free slot.
*/
func TestService_Move(t *testing.T) {
	recorder := &fakeRecorder{}
	service, _, _ := newService(recorder)
	ctx := context.Background()

	anchored, err := service.Move(ctx, "clovis", timeline.MoveRequest{ViewRequest: activeG1(), DeltaPixels: 25})
	require.NoError(t, err)
	assert.Equal(t, 0.5, anchored.Titles[0].VerticalShift)
	assert.Equal(t, 0.0, anchored.VerticalPosition)

	floating, err := service.Move(ctx, "clovis", timeline.MoveRequest{DeltaPixels: 70})
	require.NoError(t, err)
	assert.Equal(t, 0.5, floating.VerticalPosition)
	assert.Equal(t, 0.0, floating.Titles[0].VerticalShift)

	_, err = service.Move(ctx, "nobody", timeline.MoveRequest{DeltaPixels: 1})
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))

	assert.Equal(t, []string{"move", "move"}, recorder.commands)
}

/*
TestService_Hide returns a hidden copy and leaves the store alone.
*/
func TestService_Hide(t *testing.T) {
	service, _, _ := newService(nil)
	ctx := context.Background()

	hidden, err := service.Hide(ctx, "clotilde", timeline.ViewRequest{})
	require.NoError(t, err)
	assert.True(t, hidden.IsHidden)

	stored, err := service.Person(ctx, "clotilde")
	require.NoError(t, err)
	assert.False(t, stored.IsHidden)
}

/*
TestService_ToggleFamily shows filtered relatives, then hides them on the next toggle.
*/
func TestService_ToggleFamily(t *testing.T) {
	service, _, _ := newService(nil)
	ctx := context.Background()

	shown, err := service.ToggleFamily(ctx, "clovis", timeline.ToggleRequest{ViewRequest: activeG1(), Kind: "descendants"})
	require.NoError(t, err)
	assert.True(t, shown.Shown)
	require.Len(t, shown.People, 1)
	assert.Equal(t, "chlothar", shown.People[0].ID)
	assert.Equal(t, []string{"chlothar"}, shown.Settings.ForceVisibleIDs)

	next := timeline.ToggleRequest{ViewRequest: activeG1(), Kind: "descendants"}
	next.Settings = &shown.Settings
	next.Overrides = shown.People

	hidden, err := service.ToggleFamily(ctx, "clovis", next)
	require.NoError(t, err)
	assert.False(t, hidden.Shown)
	assert.True(t, hidden.People[0].IsHidden)
	assert.Empty(t, hidden.Settings.ForceVisibleIDs)

	spouses, err := service.ToggleFamily(ctx, "clovis", timeline.ToggleRequest{ViewRequest: activeG1(), Kind: "spouses"})
	require.NoError(t, err)
	require.Len(t, spouses.People, 1)
	assert.Equal(t, "clotilde", spouses.People[0].ID)

	_, err = service.ToggleFamily(ctx, "clovis", timeline.ToggleRequest{Kind: "cousins"})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
}

/*
TestService_Family resolves parents, spouses and children.
*/
func TestService_Family(t *testing.T) {
	service, _, _ := newService(nil)

	relations, err := service.Family(context.Background(), "chlothar")
	require.NoError(t, err)
	require.NotNil(t, relations.Father)
	require.NotNil(t, relations.Mother)
	assert.Equal(t, "clovis", relations.Father.ID)
	assert.Equal(t, "clotilde", relations.Mother.ID)

	relations, err = service.Family(context.Background(), "clovis")
	require.NoError(t, err)
	require.Len(t, relations.Spouses, 1)
	assert.Equal(t, "clotilde", relations.Spouses[0].ID)
	require.Len(t, relations.Children, 1)

	_, err = service.Family(context.Background(), "nobody")
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

/*
TestService_SearchPeople ranks fuzzy matches over both names and paginates.
*/
func TestService_SearchPeople(t *testing.T) {
	service, _, _ := newService(nil)
	ctx := context.Background()
	all := pagination.Params{Page: 1, Limit: 20}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"prefix", "clo", []string{"clovis", "chlothar", "clotilde"}},
		{"real_name", "chlodo", []string{"clovis"}},
		{"case_folded", "SAINT", []string{"clotilde"}},
		{"no_match", "xyz", []string{}},
		{"empty_lists_all", "  ", []string{"clovis", "clotilde", "chlothar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, meta, err := service.SearchPeople(ctx, tt.query, all)
			require.NoError(t, err)

			ids := make([]string, 0, len(items))
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), meta.Total)
		})
	}

	page, meta, err := service.SearchPeople(ctx, "clo", pagination.Params{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "chlothar", page[0].ID)
	assert.Equal(t, 3, meta.TotalPages)
}

/*
TestService_References lists groups, dynasties, entities and the title catalogue.
*/
func TestService_References(t *testing.T) {
	service, _, _ := newService(nil)
	ctx := context.Background()

	groups, err := service.Groups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	dynasties, err := service.Dynasties(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#10b981", dynasties[0].Color)

	entities, err := service.Entities(ctx)
	require.NoError(t, err)
	assert.Equal(t, "franks", entities[0].ID)

	titles := service.PredefinedTitles()
	assert.Len(t, titles, 12)
	titles[0].Label = "changed"
	assert.Equal(t, "Pope", chronicle.PredefinedTitles[0].Label)

	report, err := service.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory", report.Source)
	assert.Equal(t, 3, report.Counts["people"])
	assert.NotNil(t, report.Problems)
}
