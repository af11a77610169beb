package api

import (
	"net/http"

	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/store"
)

type renameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	skip, err := intParam(params.Get("skip"), 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid skip")
		return
	}
	limit, err := intParam(params.Get("limit"), s.cfg.TagLimit())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	tags, err := s.svc.ListTags(r.Context(), params.Get("q"), skip, limit)
	if err != nil {
		s.writeServiceError(w, "Tag", err)
		return
	}
	s.writeJSON(w, http.StatusOK, tagsJSON(tags))
}

func (s *Server) handleRenameTag(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req renameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	t, err := s.svc.RenameTag(r.Context(), id, req.Name)
	log.Event("api:rename_tag", "rename").Author("api").Tag(req.Name).Detail("id", id).Write(err)
	if err != nil {
		s.writeServiceError(w, "Tag", err)
		return
	}
	s.writeJSON(w, http.StatusOK, t.ToJSON())
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	t, err := s.svc.DeleteTag(r.Context(), id)
	log.Event("api:delete_tag", "delete").Author("api").Detail("id", id).Write(err)
	if err != nil {
		s.writeServiceError(w, "Tag", err)
		return
	}
	s.writeJSON(w, http.StatusOK, t.ToJSON())
}

func tagsJSON(tags []store.Tag) []store.TagJSON {
	out := make([]store.TagJSON, len(tags))
	for i := range tags {
		out[i] = tags[i].ToJSON()
	}
	return out
}
