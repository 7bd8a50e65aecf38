package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"cetpredict/internal/cutoff"
	"cetpredict/internal/ingest"
)

// Options carries the server wiring; DataDir is what POST /reload rebuilds
// from.
type Options struct {
	CORSOrigins []string
	DataDir     string
}

func New(opts Options, engine *cutoff.Engine, cat *cutoff.Catalogue, svc *ingest.Service, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/predict", PredictHandler(engine))
	r.Get("/courses", CoursesHandler(cat))
	r.Get("/categories", CategoriesHandler(cat))
	r.Get("/branches", BranchesHandler(cat))
	r.Post("/reload", ReloadHandler(svc, opts.DataDir, log))

	return r
}

// PredictHandler serves both query shapes: flat rows when branch is supplied,
// grouped rows when it is omitted.
func PredictHandler(engine *cutoff.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		rank, err := strconv.Atoi(q.Get("rank"))
		if err != nil {
			writeError(w, &cutoff.InvalidQueryError{Field: "rank", Value: q.Get("rank")})
			return
		}

		course := q.Get("course")
		category := q.Get("category")
		if branch := q.Get("branch"); branch != "" {
			rows, err := engine.PredictBranch(rank, course, category, branch)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, rows)
			return
		}

		groups, err := engine.Predict(rank, course, category)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, groups)
	}
}

func CoursesHandler(cat *cutoff.Catalogue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courses, err := cat.Courses()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, courses)
	}
}

func CategoriesHandler(cat *cutoff.Catalogue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := cat.Categories(r.URL.Query().Get("course"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

func BranchesHandler(cat *cutoff.Catalogue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branches, err := cat.Branches(r.URL.Query().Get("course"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, branches)
	}
}

// ReloadHandler rebuilds the next generation from the data directory and
// swaps it in. An empty batch keeps the previous generation serving.
func ReloadHandler(svc *ingest.Service, dataDir string, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.RebuildFromDir(r.Context(), dataDir)
		if errors.Is(err, ingest.ErrEmptyBatch) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  err.Error(),
				"report": report,
			})
			return
		}
		if err != nil {
			log.WithError(err).Error("reload failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "reload failed"})
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var invalid *cutoff.InvalidQueryError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": invalid.Error(),
			"field": invalid.Field,
		})
	case errors.Is(err, cutoff.ErrNotReady):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
