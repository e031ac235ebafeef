package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appanalyses "github.com/nexthire/resume-analyzer/internal/application/analyses"
	domain "github.com/nexthire/resume-analyzer/internal/domain/analysis"
	"github.com/nexthire/resume-analyzer/internal/middleware"
)

// Uploads above this size are rejected while parsing the multipart form.
const maxUploadBytes = 32 << 20

type Router struct {
	svc   *appanalyses.Service
	files domain.FileStore
	log   *zap.Logger
}

func NewRouter(svc *appanalyses.Service, files domain.FileStore, log *zap.Logger, allowedOrigins []string) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{svc: svc, files: files, log: log}
	mux := chi.NewRouter()

	mux.Use(middleware.Logging(log))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/upload", r.wrap(r.handleUpload))
		rt.Post("/extract", r.wrap(r.handleExtract))
		rt.Post("/invoke-llm", r.wrap(r.handleInvoke))
		rt.Get("/analyses", r.wrap(r.handleAnalyses))
	})

	mux.Get("/uploads/{key}", r.handleServeUpload)

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// inputError marks client mistakes that map to 400 instead of 500.
type inputError struct {
	msg string
}

func (e inputError) Error() string { return e.msg }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var in inputError
		switch {
		case errors.As(err, &in):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": in.msg})
		case errors.Is(err, domain.ErrNoInput):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": domain.ErrNoInput.Error()})
		default:
			r.log.Error("request failed",
				zap.String("path", req.URL.Path),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "AI request failed",
				"details": err.Error(),
			})
		}
	}
}

// POST /api/upload — multipart, field "file"
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	file, header, err := formFile(req)
	if err != nil {
		return err
	}
	if file == nil {
		return inputError{msg: "No file uploaded"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	stored, err := r.files.Save(req.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		return fmt.Errorf("store upload: %w", err)
	}

	return writeJSON(w, http.StatusOK, stored)
}

// POST /api/extract — stub extraction over a previously uploaded file
func (r *Router) handleExtract(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		FileURL string `json:"file_url"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return inputError{msg: "invalid request body"}
	}
	if body.FileURL == "" {
		return inputError{msg: "file_url is required"}
	}

	return writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"output": map[string]string{
			"content": fmt.Sprintf("Extracted content from %s", body.FileURL),
		},
	})
}

// POST /api/invoke-llm — multipart with optional "file", or JSON {"prompt"}.
// A file wins over a prompt; neither is a 400 with no history side effects.
func (r *Router) handleInvoke(w http.ResponseWriter, req *http.Request) error {
	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := formFile(req)
		if err != nil {
			return err
		}
		if file != nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return fmt.Errorf("read upload: %w", err)
			}
			rec, err := r.svc.AnalyzeImage(req.Context(), data, header.Header.Get("Content-Type"))
			if err != nil {
				return err
			}
			return writeJSON(w, http.StatusOK, rec)
		}
		if prompt := req.FormValue("prompt"); prompt != "" {
			rec, err := r.svc.AnalyzeText(req.Context(), prompt)
			if err != nil {
				return err
			}
			return writeJSON(w, http.StatusOK, rec)
		}
		return domain.ErrNoInput
	}

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return inputError{msg: "invalid request body"}
	}
	if body.Prompt == "" {
		return domain.ErrNoInput
	}

	rec, err := r.svc.AnalyzeText(req.Context(), body.Prompt)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rec)
}

// GET /api/analyses — full history, newest first
func (r *Router) handleAnalyses(w http.ResponseWriter, req *http.Request) error {
	records := r.svc.List()
	if records == nil {
		records = []*domain.Record{}
	}
	return writeJSON(w, http.StatusOK, records)
}

// GET /uploads/{key} — serves memory-backed uploads
func (r *Router) handleServeUpload(w http.ResponseWriter, req *http.Request) {
	key := chi.URLParam(req, "key")
	data, contentType, ok := r.files.Open(key)
	if !ok {
		http.NotFound(w, req)
		return
	}
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Write(data)
}

// formFile fetches the "file" part, returning (nil, nil, nil) when absent.
func formFile(req *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, inputError{msg: "invalid multipart form"}
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, inputError{msg: "invalid multipart form"}
	}
	return file, header, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
