package recipe

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Report is the printable form of a Result.
type Report struct {
	Name    string  `yaml:"name" json:"name"`
	Stage   string  `yaml:"stage,omitempty" json:"stage,omitempty"`
	Texture *string `yaml:"texture,omitempty" json:"texture,omitempty"`
	Error   string  `yaml:"error,omitempty" json:"error,omitempty"`
}

type reportDocument struct {
	Shaders []Report `yaml:"shaders" json:"shaders"`
}

// Reports converts results for encoding.
func Reports(results []Result) []Report {
	out := make([]Report, 0, len(results))
	for _, r := range results {
		rep := Report{Name: r.Name}
		if r.Err != nil {
			rep.Error = r.Err.Error()
			out = append(out, rep)
			continue
		}
		rep.Stage = r.Shader.Stage().String()
		if tex, ok := r.Shader.Texture(); ok {
			rep.Texture = &tex
		}
		out = append(out, rep)
	}
	return out
}

// EncodeYAML writes reports as a YAML document.
func EncodeYAML(w io.Writer, reports []Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reportDocument{Shaders: reports}); err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return enc.Close()
}

// EncodeJSON writes reports as an indented JSON document.
func EncodeJSON(w io.Writer, reports []Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reportDocument{Shaders: reports}); err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return nil
}
