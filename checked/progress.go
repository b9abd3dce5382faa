package checked

import (
	"fmt"
	"strings"
)

// StageTag records which stage, if any, a build sequence has chosen.
type StageTag uint8

const (
	StageUnset StageTag = iota
	StageVertex
	StageFragment
)

func (s StageTag) String() string {
	switch s {
	case StageUnset:
		return "unset"
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("StageTag(%d)", uint8(s))
}

// TextureTag records whether a texture has been attached.
type TextureTag uint8

const (
	TextureUnset TextureTag = iota
	TextureSet
)

func (t TextureTag) String() string {
	switch t {
	case TextureUnset:
		return "unset"
	case TextureSet:
		return "set"
	}
	return fmt.Sprintf("TextureTag(%d)", uint8(t))
}

// Progress is how far a build sequence has got.
type Progress struct {
	Stage   StageTag
	Texture TextureTag
}

// Initial is the progress of a fresh machine.
var Initial = Progress{Stage: StageUnset, Texture: TextureUnset}

// Terminal reports whether Build is legal from p.
func (p Progress) Terminal() bool {
	return p.Stage != StageUnset
}

func (p Progress) String() string {
	return "(" + p.Stage.String() + "," + p.Texture.String() + ")"
}

// Op names an operation of the build sequence.
type Op uint8

const (
	OpSetVertexStage Op = iota + 1
	OpSetFragmentStage
	OpSetTexture
	OpBuild
)

var opNames = map[Op]string{
	OpSetVertexStage:   "set_vertex_stage",
	OpSetFragmentStage: "set_fragment_stage",
	OpSetTexture:       "set_texture",
	OpBuild:            "build",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// ParseOp parses an operation name such as "set_texture".
// Dashes are accepted in place of underscores.
func ParseOp(name string) (Op, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for op, n := range opNames {
		if n == norm {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, name)
}

func (o Op) MarshalText() ([]byte, error) {
	if _, ok := opNames[o]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOp, uint8(o))
	}
	return []byte(o.String()), nil
}

func (o *Op) UnmarshalText(text []byte) error {
	op, err := ParseOp(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Step is one operation of a build sequence together with its argument.
type Step struct {
	Op      Op
	Texture string
}

// Validate checks that the step names a known operation and only carries a
// texture when the operation is OpSetTexture.
func (s Step) Validate() error {
	if _, ok := opNames[s.Op]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownOp, uint8(s.Op))
	}
	if s.Op != OpSetTexture && s.Texture != "" {
		return fmt.Errorf("%w: %s takes no texture", ErrTextureArgument, s.Op)
	}
	return nil
}

// Transition is one edge of the progress state machine.
type Transition struct {
	Op   Op
	From Progress
	To   Progress
}

// transitions holds every legal configuration edge. Build is not listed; it
// is legal from any terminal progress.
var transitions = []Transition{
	{Op: OpSetVertexStage, From: Initial, To: Progress{Stage: StageVertex}},
	{Op: OpSetFragmentStage, From: Initial, To: Progress{Stage: StageFragment}},
	{Op: OpSetTexture, From: Progress{Stage: StageFragment}, To: Progress{Stage: StageFragment, Texture: TextureSet}},
}

// Transitions returns a copy of the transition table.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

// States returns every reachable progress, initial first.
func States() []Progress {
	return []Progress{
		Initial,
		{Stage: StageVertex},
		{Stage: StageFragment},
		{Stage: StageFragment, Texture: TextureSet},
	}
}

// pickTransition returns the first edge for op leaving from, or nil.
func pickTransition(from Progress, op Op) *Transition {
	for i := range transitions {
		t := &transitions[i]
		if t.Op == op && t.From == from {
			return t
		}
	}
	return nil
}
