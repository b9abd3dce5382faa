package shaderstage

import (
	"fmt"
	"strconv"
	"strings"
)

// Stage identifies the pipeline stage a Shader runs in.
// The zero value means no stage has been chosen and never appears in a built Shader.
type Stage uint8

const (
	StageVertex Stage = iota + 1
	StageFragment
)

// String returns the lower-case stage name, or "unset" for the zero value.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case 0:
		return "unset"
	}
	return "Stage(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is one of the defined stages.
func (s Stage) Valid() bool {
	return s == StageVertex || s == StageFragment
}

// ParseStage parses a stage name. Accepted names are "vertex", "vert",
// "fragment" and "frag", case-insensitive.
func ParseStage(name string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vertex", "vert":
		return StageVertex, nil
	case "fragment", "frag":
		return StageFragment, nil
	}
	return 0, fmt.Errorf("unknown shader stage %q", name)
}

func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid stage %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(text []byte) error {
	stage, err := ParseStage(string(text))
	if err != nil {
		return err
	}
	*s = stage
	return nil
}

// Shader is the immutable product of a build sequence.
//
// A Shader returned by any Build method always has a valid stage, and carries a
// texture only when that stage is StageFragment. The zero value is not a built
// shader; IsZero reports it.
type Shader struct {
	stage      Stage
	texture    string
	hasTexture bool
}

// Stage returns the stage recorded by the build sequence.
func (s Shader) Stage() Stage { return s.stage }

// Texture returns the texture name and whether one was attached.
func (s Shader) Texture() (string, bool) { return s.texture, s.hasTexture }

// IsZero reports whether s is the zero Shader rather than the result of a build.
func (s Shader) IsZero() bool { return s.stage == 0 }

func (s Shader) String() string {
	if s.hasTexture {
		return fmt.Sprintf("Shader{stage: %s, texture: %q}", s.stage, s.texture)
	}
	return fmt.Sprintf("Shader{stage: %s}", s.stage)
}
