package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/comalice/shaderstage"
	"github.com/comalice/shaderstage/checked"
	"github.com/comalice/shaderstage/internal/ctxlog"
	"github.com/comalice/shaderstage/internal/dot"
	"github.com/comalice/shaderstage/recipe"
)

// Run executes the command described by cfg, writing reports to stdout.
// A recipe that fails to build yields an *ExitError with code 1 after every
// report has been written.
func Run(ctx context.Context, cfg *Config, stdout io.Writer) error {
	logger := ctxlog.FromContext(ctx)

	if cfg.Graph {
		_, err := io.WriteString(stdout, dot.Export(checked.States(), checked.Transitions(), checked.Initial))
		return err
	}

	var results []recipe.Result
	if len(cfg.RecipePaths) == 0 {
		logger.Debug("No recipes given, building samples.")
		results = samples()
	}

	var failed int
	for _, path := range cfg.RecipePaths {
		doc, err := load(path, cfg.Vars)
		if err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
		logger.Debug("Recipe loaded.", "path", path, "shaders", len(doc.Shaders))

		built, err := doc.Build(ctx)
		if err != nil {
			logger.Warn("Recipe has failing shaders.", "path", path, "error", err)
		}
		for _, r := range built {
			if r.Err != nil {
				failed++
			}
		}
		results = append(results, built...)
	}

	reports := recipe.Reports(results)
	var err error
	switch cfg.Output {
	case "json":
		err = recipe.EncodeJSON(stdout, reports)
	default:
		err = recipe.EncodeYAML(stdout, reports)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d shaders failed to build", failed, len(results))}
	}
	return nil
}

func load(path string, vars map[string]string) (*recipe.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := recipe.Decode(data, path, vars)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// samples builds the two shaders of the typed API walkthrough.
func samples() []recipe.Result {
	return []recipe.Result{
		{
			Name: "vert",
			Shader: shaderstage.New().
				SetVertexStage().
				Build(),
		},
		{
			Name: "frag",
			Shader: shaderstage.New().
				SetFragmentStage().
				SetTexture("tex").
				Build(),
		},
	}
}
