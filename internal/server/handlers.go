package server

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/hueshift/pkg/buildinfo"
	"github.com/matzehuels/hueshift/pkg/core/raster"
	"github.com/matzehuels/hueshift/pkg/errors"
	"github.com/matzehuels/hueshift/pkg/inspect"
	hio "github.com/matzehuels/hueshift/pkg/io"
	"github.com/matzehuels/hueshift/pkg/pipeline"
)

// multipartMemory is the part of an upload kept in memory before spilling
// to temporary files.
const multipartMemory = 8 << 20

type variantsResponse struct {
	ID          string        `json:"id"`
	RequestID   string        `json:"request_id,omitempty"`
	ImageHash   string        `json:"image_hash"`
	Format      string        `json:"format"`
	MediaType   string        `json:"media_type"`
	PaletteSize int           `json:"palette_size"`
	CacheHit    bool          `json:"cache_hit"`
	Variants    []variantBody `json:"variants"`
}

type variantBody struct {
	Index  int                `json:"index"`
	Data   []byte             `json:"data"`
	Shifts inspect.ShiftStats `json:"shifts"`
}

type paletteResponse struct {
	ID        string `json:"id"`
	RequestID string `json:"request_id,omitempty"`
	CacheHit  bool   `json:"cache_hit"`
	*inspect.Report
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	img, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts, err := s.variantOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), img, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := variantsResponse{
		ID:          uuid.NewString(),
		RequestID:   middleware.GetReqID(r.Context()),
		ImageHash:   res.ImageHash,
		Format:      res.Format,
		MediaType:   "image/" + res.Format,
		PaletteSize: res.Stats.PaletteSize,
		CacheHit:    res.CacheHit,
		Variants:    make([]variantBody, len(res.Encoded)),
	}
	for i, data := range res.Encoded {
		resp.Variants[i] = variantBody{Index: i, Data: data, Shifts: res.ShiftStats(i)}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	img, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := inspect.Options{Method: inspect.Method(r.FormValue("method"))}
	if opts.Count, err = formInt(r, "count", 0); err != nil {
		s.writeError(w, err)
		return
	}
	refresh, err := formBool(r, "refresh")
	if err != nil {
		s.writeError(w, err)
		return
	}

	report, hit, err := s.runner.Palette(r.Context(), img, opts, refresh)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, paletteResponse{
		ID:        uuid.NewString(),
		RequestID: middleware.GetReqID(r.Context()),
		CacheHit:  hit,
		Report:    report,
	})
}

// readUpload parses a multipart body and decodes its "image" part.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*raster.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "expected a multipart form")
	}

	f, _, err := r.FormFile("image")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing image part")
	}
	defer f.Close()

	img, _, err := hio.ReadImageLimit(f, s.cfg.MaxPixels)
	return img, err
}

func (s *Server) variantOptions(r *http.Request) (pipeline.Options, error) {
	var (
		opts pipeline.Options
		err  error
	)
	p := &opts.Params
	if p.Seed, err = formInt64(r, "seed", 0); err != nil {
		return opts, err
	}
	if p.HowMany, err = formInt(r, "how_many", 1); err != nil {
		return opts, err
	}
	if p.HowMany > s.cfg.MaxVariants {
		return opts, errors.New(errors.ErrCodeInvalidInput, "how_many must be <= %d, got %d", s.cfg.MaxVariants, p.HowMany)
	}
	if p.MinHueShift, err = formFloat(r, "min_hue_shift", 0); err != nil {
		return opts, err
	}
	if p.MaxHueShift, err = formFloat(r, "max_hue_shift", p.MinHueShift); err != nil {
		return opts, err
	}
	if p.HowHueShift, err = formFloat(r, "how_hue_shift", 0); err != nil {
		return opts, err
	}
	if opts.Refresh, err = formBool(r, "refresh"); err != nil {
		return opts, err
	}
	opts.Format = r.FormValue("format")
	return opts, nil
}

func formInt64(r *http.Request, name string, def int64) (int64, error) {
	v := r.FormValue(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: not an integer: %q", name, v)
	}
	return n, nil
}

func formInt(r *http.Request, name string, def int) (int, error) {
	v := r.FormValue(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: not an integer in range: %q", name, v)
	}
	return n, nil
}

func formFloat(r *http.Request, name string, def float64) (float64, error) {
	v := r.FormValue(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", name, v)
	}
	return f, nil
}

func formBool(r *http.Request, name string) (bool, error) {
	v := r.FormValue(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s: not a boolean: %q", name, v)
	}
	return b, nil
}
