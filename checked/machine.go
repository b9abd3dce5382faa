// Package checked runs shader build sequences that are only known at runtime.
//
// The shaderstage builders reject invalid sequences at compile time. When the
// sequence comes from data, such as a recipe file, that guarantee is not
// available, so Machine walks the same progress state machine and returns an
// error for every operation the compiler would have refused. Shaders are
// still produced by the typed builders; Machine only decides which of their
// methods it is allowed to call.
package checked

import (
	"fmt"
	"log/slog"

	"github.com/comalice/shaderstage"
)

// Machine is a runtime-checked shader builder. It is not safe for concurrent use.
type Machine struct {
	name     string
	progress Progress
	current  any // typed builder for progress
	history  []Op
	product  shaderstage.Shader
	consumed bool
	logger   *slog.Logger
}

// New returns a machine at the initial progress.
func New(opts ...Option) *Machine {
	m := &Machine{
		progress: Initial,
		current:  shaderstage.New(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.name != "" {
		m.logger = m.logger.With("shader", m.name)
	}
	return m
}

// Progress returns the current progress.
func (m *Machine) Progress() Progress { return m.progress }

// History returns the operations applied so far, in order.
func (m *Machine) History() []Op {
	out := make([]Op, len(m.history))
	copy(out, m.history)
	return out
}

// Product returns the shader built by a build step applied through Apply.
func (m *Machine) Product() (shaderstage.Shader, bool) {
	return m.product, m.consumed
}

func (m *Machine) SetVertexStage() error { return m.advance(OpSetVertexStage, "") }

func (m *Machine) SetFragmentStage() error { return m.advance(OpSetFragmentStage, "") }

func (m *Machine) SetTexture(name string) error { return m.advance(OpSetTexture, name) }

// Build finishes the sequence. The machine is consumed afterwards and every
// later call fails with ErrConsumed.
func (m *Machine) Build() (shaderstage.Shader, error) {
	if m.consumed {
		return shaderstage.Shader{}, m.reject(OpBuild, ErrConsumed)
	}
	if !m.progress.Terminal() {
		return shaderstage.Shader{}, m.reject(OpBuild, rejection(m.progress, OpBuild))
	}
	b, ok := m.current.(shaderstage.Terminal)
	if !ok {
		return shaderstage.Shader{}, fmt.Errorf("progress %s holds non-terminal builder %T", m.progress, m.current)
	}

	m.product = b.Build()
	m.consumed = true
	m.history = append(m.history, OpBuild)
	m.logger.Debug("shader built", "progress", m.progress.String(), "result", m.product.String())
	return m.product, nil
}

// Apply performs a single step. A build step stores its result for Product.
func (m *Machine) Apply(step Step) error {
	if err := step.Validate(); err != nil {
		return &TransitionError{Op: step.Op, From: m.progress, Err: err}
	}
	switch step.Op {
	case OpSetVertexStage:
		return m.SetVertexStage()
	case OpSetFragmentStage:
		return m.SetFragmentStage()
	case OpSetTexture:
		return m.SetTexture(step.Texture)
	case OpBuild:
		_, err := m.Build()
		return err
	}
	return m.reject(step.Op, ErrUnknownOp)
}

// Run applies steps to a new machine and returns the built shader. A trailing
// build step is optional.
func Run(steps []Step, opts ...Option) (shaderstage.Shader, error) {
	m := New(opts...)
	for i, step := range steps {
		if err := m.Apply(step); err != nil {
			return shaderstage.Shader{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	if s, built := m.Product(); built {
		return s, nil
	}
	return m.Build()
}

func (m *Machine) advance(op Op, texture string) error {
	if m.consumed {
		return m.reject(op, ErrConsumed)
	}
	t := pickTransition(m.progress, op)
	if t == nil {
		return m.reject(op, rejection(m.progress, op))
	}

	next, err := apply(m.current, op, texture)
	if err != nil {
		return err
	}

	m.logger.Debug("transition", "op", op.String(), "from", t.From.String(), "to", t.To.String())
	m.current = next
	m.progress = t.To
	m.history = append(m.history, op)
	return nil
}

func (m *Machine) reject(op Op, err error) error {
	m.logger.Debug("transition rejected", "op", op.String(), "from", m.progress.String(), "error", err)
	return &TransitionError{Op: op, From: m.progress, Err: err}
}

// apply calls the typed builder method for op.
func apply(cur any, op Op, texture string) (any, error) {
	switch b := cur.(type) {
	case shaderstage.StageBuilder:
		switch op {
		case OpSetVertexStage:
			return b.SetVertexStage(), nil
		case OpSetFragmentStage:
			return b.SetFragmentStage(), nil
		}
	case shaderstage.FragmentBuilder:
		if op == OpSetTexture {
			return b.SetTexture(texture), nil
		}
	}
	return nil, fmt.Errorf("%s is not defined on %T", op, cur)
}
