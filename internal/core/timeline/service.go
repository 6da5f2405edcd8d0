// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/internal/layout"
	"github.com/taibuivan/reignline/internal/platform/apperr"
	"github.com/taibuivan/reignline/internal/platform/constants"
	"github.com/taibuivan/reignline/internal/platform/ctxutil"
	"github.com/taibuivan/reignline/internal/platform/validate"
	"github.com/taibuivan/reignline/pkg/pagination"
	"github.com/taibuivan/reignline/pkg/pointer"
	"github.com/taibuivan/reignline/pkg/slice"
)

// Command names used in logs and metrics.
const (
	commandMove         = "move"
	commandHide         = "hide"
	commandToggleFamily = "toggle_family"
)

// ctxRequestID is the log attribute carrying the request id.
const ctxRequestID = "request_id"

var yearBoundsMessage = fmt.Sprintf("Years must lie within ±%d and span at most %d years", layout.YearLimit, layout.MaxYearSpan)

// Recorder receives service measurements. [metrics.Registry] implements it.
type Recorder interface {
	ObserveLayout(elapsed time.Duration, people, connectors int, err error)
	ObserveCommand(command string, err error)
	ObserveCache(backend string, hit bool)
	ObserveDataset(source string, elapsed time.Duration, counts map[string]int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveLayout(time.Duration, int, int, error)         {}
func (nopRecorder) ObserveCommand(string, error)                         {}
func (nopRecorder) ObserveCache(string, bool)                            {}
func (nopRecorder) ObserveDataset(string, time.Duration, map[string]int) {}

// Options are the timeline defaults applied when a request leaves them out.
type Options struct {
	MinYear  int
	MaxYear  int
	Zoom     float64
	CacheTTL time.Duration
}

// Service runs layout passes over the repository's dataset.
type Service struct {
	repo     Repository
	cache    SceneCache
	recorder Recorder
	options  Options
	logger   *slog.Logger
}

// NewService wires a service. cache and recorder may be nil.
func NewService(repo Repository, cache SceneCache, recorder Recorder, options Options, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		recorder: recorder,
		options:  options,
		logger:   logger,
	}
}

// # Scene

/*
Scene computes the scene for a view, serving it from the cache when possible.

Returns:
  - *layout.Scene: the computed or cached scene
  - string: the cache status (HIT, MISS or BYPASS)
  - error: validation errors or dataset store failures
*/
func (service *Service) Scene(ctx context.Context, view ViewRequest) (*layout.Scene, string, error) {
	input, err := service.input(ctx, view)
	if err != nil {
		return nil, "", err
	}

	if service.cache == nil {
		scene, err := service.compute(ctx, input)
		return scene, constants.CacheStatusBypass, err
	}

	key, err := SceneKey(input)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	cached, hit, err := service.cache.Get(ctx, key)
	if err != nil {
		// A broken cache degrades to computing every pass.
		service.logger.WarnContext(ctx, "scene_cache_get_failed",
			slog.String("backend", service.cache.Name()),
			slog.String(ctxRequestID, ctxutil.GetRequestID(ctx)),
			slog.Any("error", err),
		)
	}
	service.recorder.ObserveCache(service.cache.Name(), hit)
	if hit {
		service.logger.DebugContext(ctx, "scene_cache_hit", slog.String("key", key))
		return cached, constants.CacheStatusHit, nil
	}

	scene, err := service.compute(ctx, input)
	if err != nil {
		return nil, "", err
	}

	if err := service.cache.Set(ctx, key, scene, service.options.CacheTTL); err != nil {
		service.logger.WarnContext(ctx, "scene_cache_set_failed",
			slog.String("backend", service.cache.Name()),
			slog.String(ctxRequestID, ctxutil.GetRequestID(ctx)),
			slog.Any("error", err),
		)
	}
	return scene, constants.CacheStatusMiss, nil
}

func (service *Service) compute(ctx context.Context, input layout.Input) (*layout.Scene, error) {
	started := time.Now()
	scene, err := layout.Compute(input)
	elapsed := time.Since(started)

	if err != nil {
		service.recorder.ObserveLayout(elapsed, 0, 0, err)
		return nil, mapLayoutError(err)
	}

	service.recorder.ObserveLayout(elapsed, len(scene.People), len(scene.Connectors), nil)
	service.logger.InfoContext(ctx, "scene_computed",
		slog.Int("people", len(scene.People)),
		slog.Int("connectors", len(scene.Connectors)),
		slog.Duration("elapsed", elapsed),
		slog.String(ctxRequestID, ctxutil.GetRequestID(ctx)),
	)
	return scene, nil
}

// # Queries

// Person returns the stored record of one person.
func (service *Service) Person(ctx context.Context, id string) (chronicle.Person, error) {
	dataset, err := service.dataset(ctx)
	if err != nil {
		return chronicle.Person{}, err
	}
	person, ok := dataset.Index().Person(id)
	if !ok {
		return chronicle.Person{}, apperr.NotFound("Person")
	}
	return person, nil
}

// Family resolves the direct relatives of one person.
func (service *Service) Family(ctx context.Context, id string) (chronicle.Relations, error) {
	dataset, err := service.dataset(ctx)
	if err != nil {
		return chronicle.Relations{}, err
	}
	relations, ok := dataset.Index().FamilyOf(dataset.People, id)
	if !ok {
		return chronicle.Relations{}, apperr.NotFound("Person")
	}
	return relations, nil
}

// Role resolves the effective role of a person under the view's active contexts.
func (service *Service) Role(ctx context.Context, id string, view ViewRequest) (RoleResult, error) {
	engine, person, err := service.engineFor(ctx, id, view)
	if err != nil {
		return RoleResult{}, err
	}
	return RoleResult{
		PersonID:      id,
		EffectiveRole: engine.ResolveEffectiveRole(person, view.ActiveContextIDs),
	}, nil
}

// Visibility reports whether a person is drawn under the view.
func (service *Service) Visibility(ctx context.Context, id string, view ViewRequest) (VisibilityResult, error) {
	engine, person, err := service.engineFor(ctx, id, view)
	if err != nil {
		return VisibilityResult{}, err
	}
	settings := service.settingsOf(view)
	return VisibilityResult{
		PersonID:      id,
		EffectiveRole: engine.ResolveEffectiveRole(person, view.ActiveContextIDs),
		Visible:       engine.IsVisible(person, settings),
	}, nil
}

// SearchPeople ranks people by fuzzy match on their official and real names.
// An empty query lists everyone in dataset order.
func (service *Service) SearchPeople(ctx context.Context, query string, params pagination.Params) ([]PersonSummary, pagination.Meta, error) {
	dataset, err := service.dataset(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		summaries := slice.Map(dataset.People, func(person chronicle.Person) PersonSummary {
			return summaryOf(person, 0)
		})
		items, meta := pagination.Page(summaries, params)
		return items, meta, nil
	}

	// Each person contributes one target per name; owners maps targets back.
	var targets []string
	var owners []int
	for i, person := range dataset.People {
		targets = append(targets, person.OfficialName)
		owners = append(owners, i)
		if person.RealName != "" {
			targets = append(targets, person.RealName)
			owners = append(owners, i)
		}
	}

	best := make(map[int]int)
	for _, rank := range fuzzy.RankFindNormalizedFold(query, targets) {
		owner := owners[rank.OriginalIndex]
		if distance, seen := best[owner]; !seen || rank.Distance < distance {
			best[owner] = rank.Distance
		}
	}

	matches := make([]PersonSummary, 0, len(best))
	for owner, distance := range best {
		matches = append(matches, summaryOf(dataset.People[owner], distance))
	}
	order := make(map[string]int, len(dataset.People))
	for i, person := range dataset.People {
		if _, dup := order[person.ID]; !dup {
			order[person.ID] = i
		}
	}
	slices.SortFunc(matches, func(a, b PersonSummary) int {
		return cmp.Or(cmp.Compare(a.Distance, b.Distance), cmp.Compare(order[a.ID], order[b.ID]))
	})

	items, meta := pagination.Page(matches, params)
	return items, meta, nil
}

// # References

func (service *Service) Groups(ctx context.Context) ([]chronicle.HistoricalGroup, error) {
	dataset, err := service.dataset(ctx)
	return nonNil(dataset.Groups), err
}

func (service *Service) Dynasties(ctx context.Context) ([]chronicle.Dynasty, error) {
	dataset, err := service.dataset(ctx)
	return nonNil(dataset.Dynasties), err
}

func (service *Service) Entities(ctx context.Context) ([]chronicle.PoliticalEntity, error) {
	dataset, err := service.dataset(ctx)
	return nonNil(dataset.Entities), err
}

// PredefinedTitles lists the title catalogue offered by editors.
func (service *Service) PredefinedTitles() []chronicle.TitleTemplate {
	return slices.Clone(chronicle.PredefinedTitles)
}

// Report validates and audits the stored dataset.
func (service *Service) Report(ctx context.Context) (DatasetReport, error) {
	dataset, err := service.dataset(ctx)
	if err != nil {
		return DatasetReport{}, err
	}
	problems := append(dataset.Validate(), dataset.Audit()...)
	if problems == nil {
		problems = []chronicle.Problem{}
	}
	return DatasetReport{
		Source:   service.repo.Source(),
		Counts:   countsOf(dataset),
		Problems: problems,
	}, nil
}

// Ping checks the dataset store and the scene cache.
func (service *Service) Ping(ctx context.Context) error {
	if err := service.repo.Ping(ctx); err != nil {
		return err
	}
	if service.cache != nil {
		return service.cache.Ping(ctx)
	}
	return nil
}

// # Commands

// Move shifts a person vertically and returns the updated record.
func (service *Service) Move(ctx context.Context, id string, request MoveRequest) (chronicle.Person, error) {
	if err := new(validate.Validator).Finite("deltaPixels", request.DeltaPixels).Err(); err != nil {
		return chronicle.Person{}, err
	}

	engine, _, err := service.engineFor(ctx, id, request.ViewRequest)
	if err != nil {
		return chronicle.Person{}, err
	}

	updated, err := engine.MovePosition(id, request.DeltaPixels)
	service.recorder.ObserveCommand(commandMove, err)
	if err != nil {
		return chronicle.Person{}, mapLayoutError(err)
	}

	service.logger.InfoContext(ctx, "person_moved",
		slog.String("person_id", id),
		slog.Float64("delta_pixels", request.DeltaPixels),
		slog.String(ctxRequestID, ctxutil.GetRequestID(ctx)),
	)
	return updated, nil
}

// Hide marks a person hidden and returns the updated record.
func (service *Service) Hide(ctx context.Context, id string, view ViewRequest) (chronicle.Person, error) {
	engine, _, err := service.engineFor(ctx, id, view)
	if err != nil {
		return chronicle.Person{}, err
	}

	updated, err := engine.Hide(id)
	service.recorder.ObserveCommand(commandHide, err)
	if err != nil {
		return chronicle.Person{}, mapLayoutError(err)
	}

	service.logger.InfoContext(ctx, "person_hidden",
		slog.String("person_id", id),
		slog.String(ctxRequestID, ctxutil.GetRequestID(ctx)),
	)
	return updated, nil
}

// ToggleFamily shows or hides one kind of a person's relatives.
func (service *Service) ToggleFamily(ctx context.Context, id string, request ToggleRequest) (layout.FamilyToggle, error) {
	kind, err := layout.ParseFamilyKind(request.Kind)
	if err != nil {
		return layout.FamilyToggle{}, validate.RequiredError("kind", "Must be one of: ancestors, descendants, spouses")
	}

	engine, _, err := service.engineFor(ctx, id, request.ViewRequest)
	if err != nil {
		return layout.FamilyToggle{}, err
	}

	toggle, err := engine.ToggleFamily(id, kind)
	service.recorder.ObserveCommand(commandToggleFamily, err)
	if err != nil {
		return layout.FamilyToggle{}, mapLayoutError(err)
	}

	service.logger.InfoContext(ctx, "family_toggled",
		slog.String("person_id", id),
		slog.String("kind", string(kind)),
		slog.Bool("shown", toggle.Shown),
		slog.Int("affected", len(toggle.People)),
		slog.String(ctxRequestID, ctxutil.GetRequestID(ctx)),
	)
	return toggle, nil
}

// # Helpers

func (service *Service) dataset(ctx context.Context) (chronicle.Dataset, error) {
	started := time.Now()
	dataset, err := service.repo.Load(ctx)
	if err != nil {
		return chronicle.Dataset{}, err
	}
	service.recorder.ObserveDataset(service.repo.Source(), time.Since(started), countsOf(dataset))
	return dataset, nil
}

func (service *Service) settingsOf(view ViewRequest) chronicle.ViewSettings {
	settings := chronicle.DefaultViewSettings(service.options.Zoom)
	if view.Settings != nil {
		settings = *view.Settings
	}
	if settings.ForceVisibleIDs == nil {
		settings.ForceVisibleIDs = []string{}
	}
	return settings
}

// input validates a view and assembles the layout input over the stored dataset.
func (service *Service) input(ctx context.Context, view ViewRequest) (layout.Input, error) {
	settings := service.settingsOf(view)
	minYear := pointer.Fallback(view.MinYear, service.options.MinYear)
	maxYear := pointer.Fallback(view.MaxYear, service.options.MaxYear)

	validator := new(validate.Validator).
		Positive("settings.zoom", settings.Zoom).
		Custom("minYear", minYear < -layout.YearLimit, yearBoundsMessage).
		Custom("maxYear", maxYear <= minYear, "Must be after minYear").
		Custom("maxYear", maxYear > minYear && layout.CheckYearRange(minYear, maxYear) != nil, yearBoundsMessage)
	if view.Drag != nil {
		validator.Required("drag.personId", view.Drag.PersonID).
			Finite("drag.deltaY", view.Drag.DeltaY)
	}
	for _, override := range view.Overrides {
		validator.Required("overrides.id", override.ID)
	}
	if err := validator.Err(); err != nil {
		return layout.Input{}, err
	}

	dataset, err := service.dataset(ctx)
	if err != nil {
		return layout.Input{}, err
	}

	input := layout.Input{
		People:           dataset.People,
		Entities:         dataset.Entities,
		Dynasties:        dataset.Dynasties,
		ActiveContextIDs: nonNil(view.ActiveContextIDs),
		HiddenEntityIDs:  nonNil(view.HiddenEntityIDs),
		Settings:         settings,
		MinYear:          minYear,
		MaxYear:          maxYear,
		Drag:             view.Drag,
	}
	for _, override := range view.Overrides {
		input = input.WithPerson(override)
	}
	return input, nil
}

// engineFor builds an engine for the view and resolves the person it targets.
func (service *Service) engineFor(ctx context.Context, id string, view ViewRequest) (*layout.Engine, chronicle.Person, error) {
	input, err := service.input(ctx, view)
	if err != nil {
		return nil, chronicle.Person{}, err
	}

	engine, err := layout.New(input)
	if err != nil {
		return nil, chronicle.Person{}, mapLayoutError(err)
	}

	person, ok := chronicle.NewIndex(input.People, nil, nil, nil).Person(id)
	if !ok {
		return nil, chronicle.Person{}, apperr.NotFound("Person")
	}
	return engine, person, nil
}

func mapLayoutError(err error) error {
	switch {
	case errors.Is(err, layout.ErrInvalidZoom):
		return validate.RequiredError("settings.zoom", "Must be a positive number")
	case errors.Is(err, layout.ErrInvalidYearRange):
		return validate.RequiredError("maxYear", yearBoundsMessage)
	case errors.Is(err, layout.ErrUnknownPerson):
		return apperr.NotFound("Person")
	default:
		return apperr.Internal(err)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
