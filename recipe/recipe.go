// Package recipe builds shaders from declarative build sequences.
//
// A recipe lists the builder calls for one shader in order, the same calls a
// Go program would chain on shaderstage.New(). Recipes are read from YAML or
// HCL documents and replayed through a checked.Machine, so a sequence the
// compiler would reject fails here with an error instead.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/comalice/shaderstage"
	"github.com/comalice/shaderstage/checked"
	"github.com/comalice/shaderstage/internal/ctxlog"
)

// Recipe is a named build sequence.
type Recipe struct {
	Name  string
	Steps []checked.Step
}

// Document is a set of recipes decoded from one source.
type Document struct {
	Shaders []Recipe
}

// Result is the outcome of building one recipe.
type Result struct {
	Name   string
	Shader shaderstage.Shader
	Err    error
}

// Validate checks recipe names and the shape of every step. It does not
// check step order; that is what Build is for.
func (d *Document) Validate() error {
	if len(d.Shaders) == 0 {
		return errors.New("no shaders defined")
	}
	seen := make(map[string]bool, len(d.Shaders))
	for i, r := range d.Shaders {
		if r.Name == "" {
			return fmt.Errorf("shader %d: name is required", i+1)
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate shader %q", r.Name)
		}
		seen[r.Name] = true
		for j, s := range r.Steps {
			if err := s.Validate(); err != nil {
				return fmt.Errorf("shader %q step %d: %w", r.Name, j+1, err)
			}
		}
	}
	return nil
}

// Build replays the recipe. The logger in ctx receives the machine's transitions.
func (r Recipe) Build(ctx context.Context) (shaderstage.Shader, error) {
	logger := ctxlog.FromContext(ctx)
	s, err := checked.Run(r.Steps, checked.WithLogger(logger), checked.WithName(r.Name))
	if err != nil {
		return shaderstage.Shader{}, fmt.Errorf("shader %q: %w", r.Name, err)
	}
	logger.Info("Shader built.", "shader", r.Name, "stage", s.Stage().String())
	return s, nil
}

// Build builds every recipe in document order. Failing recipes do not stop
// the others; their errors are joined into the returned error.
func (d *Document) Build(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(d.Shaders))
	var errs []error
	for _, r := range d.Shaders {
		s, err := r.Build(ctx)
		if err != nil {
			errs = append(errs, err)
		}
		results = append(results, Result{Name: r.Name, Shader: s, Err: err})
	}
	return results, errors.Join(errs...)
}

// Decode picks the format from the file extension of filename: .yaml and
// .yml are YAML, .hcl is HCL. vars are only used by HCL documents.
func Decode(data []byte, filename string, vars map[string]string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".hcl":
		return DecodeHCL(data, filename, vars)
	}
	return nil, fmt.Errorf("%s: unsupported recipe format", filename)
}
