package api

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/media"
)

// multipartOverhead is headroom for multipart framing above the file limit.
const multipartOverhead = 1 << 20

type fetchRequest struct {
	URL string `json:"url"`
}

type mediaResponse struct {
	URL string `json:"url"`
}

// fileOnlyFS hides directories from http.FileServer so media paths serve
// files and never listings.
type fileOnlyFS struct {
	http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

// mediaFiles serves uploaded and fetched media. Directory paths are 404.
func mediaFiles(dir string) http.Handler {
	return http.StripPrefix(media.URLPrefix, http.FileServer(fileOnlyFS{http.Dir(dir)}))
}

// handleUpload stores the multipart "file" field and returns its URL.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.MaxUpload()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.writeError(w, http.StatusRequestEntityTooLarge, media.ErrTooLarge.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	url, err := s.media.Save(header.Filename, file)
	log.Event("api:upload", "upload").Author("api").Detail("filename", header.Filename).Write(err)
	if err != nil {
		s.writeMediaError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, mediaResponse{URL: url})
}

// handleFetchMedia downloads a remote file into the media directory.
func (s *Server) handleFetchMedia(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	url, err := s.fetcher.Fetch(r.Context(), req.URL)
	log.Event("api:fetch_media", "fetch").Author("api").Detail("url", req.URL).Write(err)
	if err != nil {
		s.writeMediaError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, mediaResponse{URL: url})
}

func (s *Server) writeMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, media.ErrTooLarge):
		s.writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, media.ErrCircuitOpen):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, media.ErrFetchFailed):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("media request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
