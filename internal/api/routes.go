package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/forPelevin/prclips/internal/domain/project"
	"github.com/forPelevin/prclips/internal/domain/timecode"
	"github.com/forPelevin/prclips/internal/logging"
	"github.com/forPelevin/prclips/internal/ports/adapters/projectfile"
	"github.com/forPelevin/prclips/internal/ports/adapters/render"
	"github.com/forPelevin/prclips/internal/usecase"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.gate == nil {
		cfg.gate = &sync.Mutex{}
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Post("/extract", extractHandler(cfg))

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var uptime int64
		if !cfg.StartTime.IsZero() {
			uptime = int64(time.Since(cfg.StartTime).Seconds())
		}
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: "0.1.0",
			UptimeS: uptime,
		})
	}
}

func extractHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.WithRequestID(cfg.Logger, requestID(r.Context()))

		format := strings.ToLower(r.URL.Query().Get("format"))
		if format == "" {
			format = render.FormatCSV
		}
		if format != render.FormatCSV && format != render.FormatJSON {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format), CodeBadRequest)
			return
		}
		renderer, _ := render.New(format)

		opts, err := extractOptions(cfg, r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), CodeBadRequest)
			return
		}

		if !cfg.gate.TryLock() {
			WriteError(w, http.StatusConflict, "another extraction is in progress", CodeBusy)
			return
		}
		defer cfg.gate.Unlock()

		name, data, err := readProject(w, r, cfg.MaxUploadBytes)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				WriteError(w, http.StatusRequestEntityTooLarge, "project file too large", CodeTooLarge)
				return
			}
			WriteError(w, http.StatusBadRequest, err.Error(), CodeBadRequest)
			return
		}

		uc := newUsecase(logger)
		res, err := uc.Extract(r.Context(), name, data, opts)
		if err != nil {
			writeExtractError(w, err)
			return
		}

		var buf bytes.Buffer
		if err := renderer.Render(&buf, res.Report); err != nil {
			logger.Error("render failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "render failed", CodeInternal)
			return
		}

		w.Header().Set("Content-Type", renderer.ContentType())
		if format == render.FormatCSV {
			w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": csvDownloadName}))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func extractOptions(cfg ServerConfig, r *http.Request) (usecase.Options, error) {
	opts := usecase.Options{
		FrameRate:      cfg.Extract.FrameRate,
		TicksPerSecond: cfg.Extract.TicksPerSecond,
		Nested:         cfg.Extract.Nested,
		MaxDepth:       cfg.Extract.MaxDepth,
		SortByTimecode: cfg.Extract.Sort,
	}
	if opts.FrameRate == 0 {
		opts.FrameRate = timecode.DefaultFrameRate
	}

	q := r.URL.Query()
	if v := q.Get("fps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return usecase.Options{}, fmt.Errorf("fps must be a positive integer")
		}
		opts.FrameRate = n
	}
	for key, dst := range map[string]*bool{"nested": &opts.Nested, "sort": &opts.SortByTimecode} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return usecase.Options{}, fmt.Errorf("%s must be a boolean", key)
		}
		*dst = b
	}
	return opts, nil
}

// readProject accepts a multipart upload in field "file" or the raw request body.
func readProject(w http.ResponseWriter, r *http.Request, limit int64) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	name := "upload.xml"
	var src io.Reader = r.Body

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMaxMem); err != nil {
			return "", nil, fmt.Errorf("parse multipart: %w", err)
		}
		f, hdr, err := r.FormFile(multipartField)
		if err != nil {
			return "", nil, fmt.Errorf("missing form field %q", multipartField)
		}
		defer f.Close()
		name = hdr.Filename
		src = f
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return "", nil, fmt.Errorf("read project: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", nil, errors.New("empty project file")
	}
	data, err := projectfile.Decode(raw)
	if err != nil {
		return "", nil, err
	}
	return name, data, nil
}

func writeExtractError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, project.ErrParse):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), CodeParse)
	case errors.Is(err, project.ErrNoTimelines):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), CodeNoTimelines)
	case errors.Is(err, timecode.ErrInvalidFrameRate):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeBadRequest)
	default:
		WriteError(w, http.StatusInternalServerError, "extraction failed", CodeInternal)
	}
}
