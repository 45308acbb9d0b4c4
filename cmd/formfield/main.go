package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/fieldspec"
	"github.com/goliatone/go-formfield/pkg/orchestrator"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/tui"
	"github.com/goliatone/go-formfield/pkg/renderers/vanilla"
)

// envConfig seeds flag defaults from the environment.
type envConfig struct {
	Config    string `env:"FORMFIELD_CONFIG" envDefault:"examples/fields.yaml"`
	Schema    string `env:"FORMFIELD_SCHEMA"`
	Mode      string `env:"FORMFIELD_MODE" envDefault:"html"`
	Addr      string `env:"FORMFIELD_ADDR" envDefault:":8080"`
	ThemeFile string `env:"FORMFIELD_THEME_FILE"`
	Theme     string `env:"FORMFIELD_THEME"`
	Variant   string `env:"FORMFIELD_THEME_VARIANT"`
}

func main() {
	var defaults envConfig
	if err := env.Parse(&defaults); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	config := flag.String("config", defaults.Config, "field document (YAML, or OpenAPI JSON/YAML)")
	schema := flag.String("schema", defaults.Schema, "OpenAPI component schema to read fields from")
	mode := flag.String("mode", defaults.Mode, "output mode: html, json, tui or serve")
	addr := flag.String("addr", defaults.Addr, "listen address for serve mode")
	output := flag.String("output", "", "output file (stdout if empty)")
	themeFile := flag.String("theme-file", defaults.ThemeFile, "go-theme manifest (JSON or YAML)")
	themeName := flag.String("theme", defaults.Theme, "theme name")
	variant := flag.String("variant", defaults.Variant, "theme variant")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := fieldspec.LoadFile(ctx, *config, *schema)
	if err != nil {
		log.Fatalf("Failed to load fields: %v", err)
	}

	selector, err := loadSelector(*themeFile, *themeName, *variant)
	if err != nil {
		log.Fatalf("Failed to load theme: %v", err)
	}

	registry, err := newRegistry()
	if err != nil {
		log.Fatalf("Failed to configure renderers: %v", err)
	}

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultTheme(*themeName, *variant),
	}
	if selector != nil {
		options = append(options, orchestrator.WithThemeSelector(selector))
	}
	orch := orchestrator.New(options...)

	switch strings.ToLower(strings.TrimSpace(*mode)) {
	case "html":
		writeOutput(ctx, orch, doc, "vanilla", *output)
	case "json":
		writeOutput(ctx, orch, doc, "json", *output)
	case "tui":
		writeOutput(ctx, orch, doc, "tui", *output)
	case "serve":
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		handler, err := newServer(orch, doc, logger)
		if err != nil {
			log.Fatalf("Failed to configure server: %v", err)
		}
		if err := serve(ctx, *addr, handler, logger); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	default:
		log.Fatalf("unknown mode: %q", *mode)
	}
}

func newRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(html)
	registry.MustRegister(render.JSONRenderer{})
	registry.MustRegister(tui.New())
	return registry, nil
}

func loadSelector(path, name, variant string) (theme.ThemeSelector, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	manifest, err := render.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	selector, err := render.NewThemeSelector(name, variant, manifest)
	if err != nil {
		return nil, err
	}
	return selector, nil
}

func writeOutput(ctx context.Context, orch *orchestrator.Orchestrator, doc fieldspec.Document, renderer, path string) {
	out, err := orch.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: renderer,
	})
	if err != nil {
		log.Fatalf("Failed to render fields: %v", err)
	}

	if path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", path)
		return
	}
	fmt.Println(string(out))
}

func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
