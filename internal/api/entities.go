package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/search"
	"github.com/jpl-au/entlog/internal/store"
)

// searchResult is one ranked entity in a list response.
type searchResult struct {
	store.EntityJSON
	Score int `json:"score"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateEntity(w http.ResponseWriter, r *http.Request) {
	var in store.EntityInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	e, err := s.svc.CreateEntity(r.Context(), in)
	if err != nil {
		log.Event("api:create_entity", "create").Author("api").Write(err)
		s.writeServiceError(w, "Entity", err)
		return
	}
	log.Event("api:create_entity", "create").Author("api").Entity(e.ID).Write(nil)
	s.writeJSON(w, http.StatusCreated, e.ToJSON())
}

// handleListEntities searches the catalog. With no q it lists newest first.
func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := search.Query{
		Text:  params.Get("q"),
		Scope: search.Scope(params.Get("search_field")),
		Limit: s.cfg.SearchLimit(),
	}

	var err error
	if q.Skip, err = intParam(params.Get("skip"), 0); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid skip")
		return
	}
	if q.Limit, err = intParam(params.Get("limit"), q.Limit); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if v := params.Get("exact_match"); v != "" {
		if q.ExactMatch, err = strconv.ParseBool(v); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid exact_match")
			return
		}
	}

	results, err := s.svc.Search(r.Context(), q)
	if err != nil {
		s.writeServiceError(w, "Entity", err)
		return
	}
	out := make([]searchResult, len(results))
	for i := range results {
		out[i] = searchResult{EntityJSON: results[i].Entity.ToJSON(), Score: results[i].Score}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	e, err := s.svc.Entity(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, "Entity", err)
		return
	}
	s.writeJSON(w, http.StatusOK, e.ToJSON())
}

func (s *Server) handleUpdateEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var in store.EntityInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	e, err := s.svc.UpdateEntity(r.Context(), id, in)
	log.Event("api:update_entity", "update").Author("api").Entity(id).Write(err)
	if err != nil {
		s.writeServiceError(w, "Entity", err)
		return
	}
	s.writeJSON(w, http.StatusOK, e.ToJSON())
}

func (s *Server) handleDeleteEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	e, err := s.svc.DeleteEntity(r.Context(), id)
	log.Event("api:delete_entity", "delete").Author("api").Entity(id).Write(err)
	if err != nil {
		s.writeServiceError(w, "Entity", err)
		return
	}
	s.writeJSON(w, http.StatusOK, e.ToJSON())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, "Catalog", err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

// pathID parses the {id} path segment, writing a 400 when it is malformed.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

var errBadInt = errors.New("not an integer")

// intParam parses an optional integer query parameter.
func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errBadInt
	}
	return n, nil
}
