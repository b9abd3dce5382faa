package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/comalice/shaderstage/checked"
)

type yamlDocument struct {
	Shaders []yamlRecipe `yaml:"shaders"`
}

type yamlRecipe struct {
	Name  string     `yaml:"name"`
	Steps []yamlStep `yaml:"steps"`
}

// yamlStep accepts either a bare operation name or a mapping with op and texture:
//
//	- set_fragment_stage
//	- op: set_texture
//	  texture: albedo
type yamlStep checked.Step

func (s *yamlStep) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		op, err := checked.ParseOp(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if op == checked.OpSetTexture {
			return fmt.Errorf("line %d: %s needs a texture", node.Line, op)
		}
		*s = yamlStep{Op: op}
		return nil

	case yaml.MappingNode:
		var raw struct {
			Op      string  `yaml:"op"`
			Texture *string `yaml:"texture"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		op, err := checked.ParseOp(raw.Op)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		switch {
		case op == checked.OpSetTexture && raw.Texture == nil:
			return fmt.Errorf("line %d: %s needs a texture", node.Line, op)
		case op != checked.OpSetTexture && raw.Texture != nil:
			return fmt.Errorf("line %d: %w: %s takes no texture", node.Line, checked.ErrTextureArgument, op)
		}
		step := yamlStep{Op: op}
		if raw.Texture != nil {
			step.Texture = *raw.Texture
		}
		*s = step
		return nil
	}
	return fmt.Errorf("line %d: step must be an operation name or a mapping", node.Line)
}

// DecodeYAML decodes and validates a YAML recipe document.
func DecodeYAML(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw yamlDocument
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}

	doc := &Document{Shaders: make([]Recipe, 0, len(raw.Shaders))}
	for _, r := range raw.Shaders {
		steps := make([]checked.Step, len(r.Steps))
		for i, s := range r.Steps {
			steps[i] = checked.Step(s)
		}
		doc.Shaders = append(doc.Shaders, Recipe{Name: r.Name, Steps: steps})
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}
