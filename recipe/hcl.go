package recipe

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/comalice/shaderstage/checked"
)

// hclFile is the root of an HCL recipe document:
//
//	shader "frag" {
//	  step "set_fragment_stage" {}
//	  step "set_texture" {
//	    texture = "${var.prefix}albedo"
//	  }
//	}
type hclFile struct {
	Shaders []*hclShader `hcl:"shader,block"`
}

type hclShader struct {
	Name  string     `hcl:"name,label"`
	Steps []*hclStep `hcl:"step,block"`
}

type hclStep struct {
	Op      string  `hcl:"op,label"`
	Texture *string `hcl:"texture,optional"`
}

// DecodeHCL decodes and validates an HCL recipe document. Each entry of vars
// is visible to expressions as var.<name>.
func DecodeHCL(data []byte, filename string, vars map[string]string) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(vars), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	doc := &Document{Shaders: make([]Recipe, 0, len(root.Shaders))}
	for _, sh := range root.Shaders {
		r := Recipe{Name: sh.Name, Steps: make([]checked.Step, 0, len(sh.Steps))}
		for i, st := range sh.Steps {
			step, err := st.translate()
			if err != nil {
				return nil, fmt.Errorf("%s: shader %q step %d: %w", filename, sh.Name, i+1, err)
			}
			r.Steps = append(r.Steps, step)
		}
		doc.Shaders = append(doc.Shaders, r)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return doc, nil
}

func (s *hclStep) translate() (checked.Step, error) {
	op, err := checked.ParseOp(s.Op)
	if err != nil {
		return checked.Step{}, err
	}
	switch {
	case op == checked.OpSetTexture && s.Texture == nil:
		return checked.Step{}, fmt.Errorf("%s needs a texture", op)
	case op != checked.OpSetTexture && s.Texture != nil:
		return checked.Step{}, fmt.Errorf("%w: %s takes no texture", checked.ErrTextureArgument, op)
	}
	step := checked.Step{Op: op}
	if s.Texture != nil {
		step.Texture = *s.Texture
	}
	return step, nil
}

func evalContext(vars map[string]string) *hcl.EvalContext {
	values := make(map[string]cty.Value, len(vars))
	for k, v := range vars {
		values[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": cty.ObjectVal(values)},
	}
}
