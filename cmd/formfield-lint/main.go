package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-formfield/pkg/fieldspec"
)

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint OpenAPI documents for unsupported %s extensions.\n", fieldspec.ExtensionKey); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/profile.openapi.yaml"}
	}

	ctx := context.Background()
	failed := false
	for _, path := range paths {
		violations, err := lintFile(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, v := range violations {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, v)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, path string) ([]fieldspec.Violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return fieldspec.LintOpenAPI(ctx, raw)
}
