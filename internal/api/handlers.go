package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cafeplan/pkg/buildinfo"
	"github.com/matzehuels/cafeplan/pkg/core/render/sink"
	"github.com/matzehuels/cafeplan/pkg/design"
	"github.com/matzehuels/cafeplan/pkg/errors"
	"github.com/matzehuels/cafeplan/pkg/params"
	"github.com/matzehuels/cafeplan/pkg/pipeline"
)

type healthResponse struct {
	Status  string         `json:"status"`
	Version buildinfo.Info `json:"version"`
}

type designResponse struct {
	ID        string    `json:"id"`
	Format    string    `json:"format"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Slots     int       `json:"slots"`
	Chairs    int       `json:"chairs"`
	Dropped   int       `json:"dropped_chairs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Current()})
}

func (s *Server) handleDefaultParameters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, params.Default())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, sink.NewDocument(res, opts.Title))
}

func (s *Server) handleCreateDesign(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name := r.URL.Query().Get("format")
	if name == "" && len(opts.Formats) > 0 {
		name = opts.Formats[0]
	}
	if name == "" {
		name = DefaultDesignFormat
	}
	format, err := sink.ParseFormat(name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{string(format)}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	d := design.New(string(format), format.ContentType(), result.Artifacts[string(format)], s.ttl)
	if err := s.store.Save(r.Context(), d); err != nil {
		s.fail(w, r, err)
		return
	}

	url := s.designURL(d.ID)
	w.Header().Set("Location", url)
	w.Header().Set("X-Cache", cacheHeader(result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit))
	writeJSON(w, http.StatusCreated, designResponse{
		ID:        d.ID,
		Format:    d.Format,
		URL:       url,
		ExpiresAt: d.ExpiresAt,
		Slots:     result.Stats.Slots,
		Chairs:    result.Stats.Chairs,
		Dropped:   result.Stats.DroppedChairs,
	})
}

func (s *Server) handleGetDesign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "layout-"+d.ID+"."+d.Format))
	w.Header().Set("Expires", d.ExpiresAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(d.Data)
}

func (s *Server) handleDeleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeOptions reads pipeline options from the body on top of the default
// parameters. An empty body means all defaults.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{Params: params.Default()}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil && !stderrors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return opts, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", s.maxBody)
		}
		return opts, errors.New(errors.ErrCodeInvalidInput, "decode request body: %v", err)
	}
	opts.Logger = s.logger
	return opts, nil
}

func (s *Server) designURL(id string) string {
	return strings.TrimRight(s.baseURL, "/") + "/api/designs/" + id
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
