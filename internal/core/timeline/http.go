// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/reignline/internal/platform/constants"
	requestutil "github.com/taibuivan/reignline/internal/platform/request"
	"github.com/taibuivan/reignline/internal/platform/respond"
	"github.com/taibuivan/reignline/pkg/pagination"
)

// # Handler Implementation

// Handler translates HTTP requests into [Service] calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a timeline [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the timeline endpoints, mounted under /api/v1.
//
// # Routing Strategy
//
//   - Scene: POST because the view request carries settings and overrides.
//   - People: lookups are GET, commands are POST and never persist.
//   - References: static listings for the renderer's pickers.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/scene", handler.scene)

	router.Route("/people", func(people chi.Router) {
		people.Get("/", handler.searchPeople)
		people.Get("/{id}", handler.getPerson)
		people.Get("/{id}/family", handler.getFamily)
		people.Post("/{id}/role", handler.role)
		people.Post("/{id}/visibility", handler.visibility)
		people.Post("/{id}/move", handler.move)
		people.Post("/{id}/hide", handler.hide)
		people.Post("/{id}/family/toggle", handler.toggleFamily)
	})

	router.Get("/titles/predefined", handler.predefinedTitles)
	router.Get("/groups", handler.listGroups)
	router.Get("/dynasties", handler.listDynasties)
	router.Get("/entities", handler.listEntities)
	router.Get("/dataset/report", handler.datasetReport)

	return router
}

// # Scene

/*
POST /api/v1/scene.

Description: Computes the scene for a view over the stored dataset.

Request:
  - body: ViewRequest

Response:
  - 200: layout.Scene, with X-Cache set to HIT, MISS or BYPASS
  - 400: invalid zoom, inverted year bounds or malformed JSON
*/
func (handler *Handler) scene(writer http.ResponseWriter, request *http.Request) {
	var view ViewRequest
	if err := decodeOptional(writer, request, constants.MaxSceneBodyBytes, &view); err != nil {
		respond.Error(writer, request, err)
		return
	}

	scene, cacheStatus, err := handler.service.Scene(request.Context(), view)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set(constants.HeaderXCache, cacheStatus)
	respond.OK(writer, scene)
}

// # People

/*
GET /api/v1/people.

Request:
  - q: string (fuzzy match on official and real names)
  - page, limit: int

Response:
  - 200: []PersonSummary: Paginated search hits, closest first
*/
func (handler *Handler) searchPeople(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	items, meta, err := handler.service.SearchPeople(request.Context(), request.URL.Query().Get("q"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, meta)
}

func (handler *Handler) getPerson(writer http.ResponseWriter, request *http.Request) {
	person, err := handler.service.Person(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, person)
}

func (handler *Handler) getFamily(writer http.ResponseWriter, request *http.Request) {
	relations, err := handler.service.Family(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, relations)
}

func (handler *Handler) role(writer http.ResponseWriter, request *http.Request) {
	var view ViewRequest
	if err := decodeOptional(writer, request, constants.MaxCommandBodyBytes, &view); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Role(request.Context(), requestutil.Param(request, "id"), view)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) visibility(writer http.ResponseWriter, request *http.Request) {
	var view ViewRequest
	if err := decodeOptional(writer, request, constants.MaxCommandBodyBytes, &view); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Visibility(request.Context(), requestutil.Param(request, "id"), view)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// # Commands

/*
POST /api/v1/people/{id}/move.

Description: Shifts a person vertically. The record is returned, not stored.

Request:
  - body: MoveRequest (view fields plus deltaPixels)

Response:
  - 200: chronicle.Person: the updated record
  - 404: unknown person
*/
func (handler *Handler) move(writer http.ResponseWriter, request *http.Request) {
	var body MoveRequest
	if err := requestutil.DecodeJSON(writer, request, constants.MaxCommandBodyBytes, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.service.Move(request.Context(), requestutil.Param(request, "id"), body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, person)
}

func (handler *Handler) hide(writer http.ResponseWriter, request *http.Request) {
	var view ViewRequest
	if err := decodeOptional(writer, request, constants.MaxCommandBodyBytes, &view); err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.service.Hide(request.Context(), requestutil.Param(request, "id"), view)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, person)
}

/*
POST /api/v1/people/{id}/family/toggle.

Request:
  - body: ToggleRequest (view fields plus kind: ancestors, descendants or spouses)

Response:
  - 200: layout.FamilyToggle: affected people and the new view settings
*/
func (handler *Handler) toggleFamily(writer http.ResponseWriter, request *http.Request) {
	var body ToggleRequest
	if err := requestutil.DecodeJSON(writer, request, constants.MaxCommandBodyBytes, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	toggle, err := handler.service.ToggleFamily(request.Context(), requestutil.Param(request, "id"), body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, toggle)
}

// # References

func (handler *Handler) predefinedTitles(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.service.PredefinedTitles())
}

func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	groups, err := handler.service.Groups(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, groups)
}

func (handler *Handler) listDynasties(writer http.ResponseWriter, request *http.Request) {
	dynasties, err := handler.service.Dynasties(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dynasties)
}

func (handler *Handler) listEntities(writer http.ResponseWriter, request *http.Request) {
	entities, err := handler.service.Entities(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entities)
}

func (handler *Handler) datasetReport(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.Report(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

// decodeOptional decodes a JSON body when one is present. An empty body keeps target's zero value.
func decodeOptional(writer http.ResponseWriter, request *http.Request, limit int64, target any) error {
	if request.Body == nil || request.Body == http.NoBody || request.ContentLength == 0 {
		return nil
	}
	return requestutil.DecodeJSON(writer, request, limit, target)
}
