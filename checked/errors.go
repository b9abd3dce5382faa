package checked

import (
	"errors"
	"fmt"
)

var (
	ErrStageAlreadySet      = errors.New("shader stage already set")
	ErrStageUnset           = errors.New("shader stage not set")
	ErrTextureNeedsFragment = errors.New("texture requires the fragment stage")
	ErrTextureAlreadySet    = errors.New("texture already set")
	ErrConsumed             = errors.New("builder already consumed by build")
	ErrUnknownOp            = errors.New("unknown operation")
	ErrTextureArgument      = errors.New("unexpected texture argument")
)

// TransitionError reports an operation that is not legal from the machine's
// current progress.
type TransitionError struct {
	Op   Op
	From Progress
	Err  error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s from %s: %v", e.Op, e.From, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }

// rejection explains why op has no edge from p.
func rejection(p Progress, op Op) error {
	switch op {
	case OpSetVertexStage, OpSetFragmentStage:
		return ErrStageAlreadySet
	case OpSetTexture:
		switch {
		case p.Stage != StageFragment:
			return ErrTextureNeedsFragment
		case p.Texture == TextureSet:
			return ErrTextureAlreadySet
		}
	case OpBuild:
		return ErrStageUnset
	}
	return ErrUnknownOp
}
