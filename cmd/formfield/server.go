package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-formfield/components/fieldcheck"
	"github.com/goliatone/go-formfield/pkg/fieldspec"
	"github.com/goliatone/go-formfield/pkg/orchestrator"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/vanilla"
)

// newServer mounts the demo page, the check endpoint and the stylesheet.
// GET renders the query values as edits; POST renders the submitted values as
// edits followed by a blur, the way a browser leaves each field on submit.
func newServer(orch *orchestrator.Orchestrator, doc fieldspec.Document, logger *slog.Logger) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logRequests(logger))

	if _, err := fieldcheck.RegisterRoutes(r, "/",
		fieldcheck.WithFields(doc.Fields),
		fieldcheck.WithLogger(logger),
	); err != nil {
		return nil, err
	}
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))

	page := pageHandler(orch, doc, logger)
	r.Get("/", page)
	r.Post("/", page)
	return r, nil
}

func pageHandler(orch *orchestrator.Orchestrator, doc fieldspec.Document, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		submitted := r.Method == http.MethodPost
		req := orchestrator.Request{
			Document: &doc,
			Values:   make(map[string]string),
			Focused:  r.Form.Get("focus"),
			Renderer: "vanilla",
			RenderOptions: render.RenderOptions{
				Title:    "Form fields",
				Action:   "/",
				Method:   http.MethodPost,
				Fragment: r.Form.Get("fragment") == "1",
			},
		}
		source := r.URL.Query()
		if submitted {
			source = r.PostForm
		}
		for _, spec := range doc.Fields {
			if !source.Has(spec.Name) {
				continue
			}
			req.Values[spec.Name] = source.Get(spec.Name)
			if submitted {
				req.Blurred = append(req.Blurred, spec.Name)
			}
		}

		out, err := orch.Generate(r.Context(), req)
		if err != nil {
			logger.Error("render page", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(out)
	}
}

func logRequests(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
