package shaderstage

// The builder is a typestate: every reachable progress state of a build
// sequence is its own type, and a type only has the methods that are legal
// from that state. Calling anything else is a compile error.
//
//	(unset, unset)      StageBuilder             SetVertexStage, SetFragmentStage
//	(vertex, unset)     VertexBuilder            Build
//	(fragment, unset)   FragmentBuilder          SetTexture, Build
//	(fragment, set)     TexturedFragmentBuilder  Build
//
// Builders are values. Each call returns the next state and leaves the
// receiver untouched, so a partially configured builder can be kept and
// finished more than once.

// StageBuilder is the initial state: no stage chosen, no texture attached.
type StageBuilder struct{}

// VertexBuilder has the vertex stage chosen. It can only be built.
type VertexBuilder struct{}

// FragmentBuilder has the fragment stage chosen and no texture yet.
type FragmentBuilder struct{}

// TexturedFragmentBuilder has the fragment stage chosen and a texture attached.
// Its zero value has no texture and builds an untextured fragment shader.
type TexturedFragmentBuilder struct {
	texture string
	set     bool
}

// Terminal is implemented by the progress states from which Build is legal.
type Terminal interface {
	Build() Shader
}

var (
	_ Terminal = VertexBuilder{}
	_ Terminal = FragmentBuilder{}
	_ Terminal = TexturedFragmentBuilder{}
)

// New starts a build sequence.
func New() StageBuilder {
	return StageBuilder{}
}

// SetVertexStage chooses the vertex stage.
func (StageBuilder) SetVertexStage() VertexBuilder {
	return VertexBuilder{}
}

// SetFragmentStage chooses the fragment stage.
func (StageBuilder) SetFragmentStage() FragmentBuilder {
	return FragmentBuilder{}
}

// SetTexture attaches a texture by name. An empty name is still recorded as
// an attached texture.
func (FragmentBuilder) SetTexture(name string) TexturedFragmentBuilder {
	return TexturedFragmentBuilder{texture: name, set: true}
}

// Build returns a vertex shader without a texture.
func (VertexBuilder) Build() Shader {
	return Shader{stage: StageVertex}
}

// Build returns a fragment shader without a texture.
func (FragmentBuilder) Build() Shader {
	return Shader{stage: StageFragment}
}

// Build returns a fragment shader carrying the attached texture.
func (b TexturedFragmentBuilder) Build() Shader {
	return Shader{stage: StageFragment, texture: b.texture, hasTexture: b.set}
}
