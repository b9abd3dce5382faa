package checked

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/shaderstage"
)

func TestRunValidSequences(t *testing.T) {
	tests := []struct {
		name    string
		steps   []Step
		stage   shaderstage.Stage
		texture string
		hasTex  bool
	}{
		{
			name:  "vertex",
			steps: []Step{{Op: OpSetVertexStage}, {Op: OpBuild}},
			stage: shaderstage.StageVertex,
		},
		{
			name:    "fragment with texture",
			steps:   []Step{{Op: OpSetFragmentStage}, {Op: OpSetTexture, Texture: "tex"}, {Op: OpBuild}},
			stage:   shaderstage.StageFragment,
			texture: "tex",
			hasTex:  true,
		},
		{
			name:  "fragment, implicit build",
			steps: []Step{{Op: OpSetFragmentStage}},
			stage: shaderstage.StageFragment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Run(tt.steps)
			require.NoError(t, err)
			assert.Equal(t, tt.stage, s.Stage())
			tex, ok := s.Texture()
			assert.Equal(t, tt.texture, tex)
			assert.Equal(t, tt.hasTex, ok)
		})
	}
}

func TestRunMatchesTypedBuilder(t *testing.T) {
	got, err := Run([]Step{{Op: OpSetFragmentStage}, {Op: OpSetTexture, Texture: "tex"}})
	require.NoError(t, err)
	assert.Equal(t, shaderstage.New().SetFragmentStage().SetTexture("tex").Build(), got)
}

func TestRunRejectsInvalidSequences(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step
		op    Op
		from  Progress
		want  error
	}{
		{
			name:  "texture on vertex",
			steps: []Step{{Op: OpSetVertexStage}, {Op: OpSetTexture, Texture: "x"}},
			op:    OpSetTexture,
			from:  Progress{Stage: StageVertex},
			want:  ErrTextureNeedsFragment,
		},
		{
			name:  "build before stage",
			steps: []Step{{Op: OpBuild}},
			op:    OpBuild,
			from:  Initial,
			want:  ErrStageUnset,
		},
		{
			name:  "empty sequence",
			steps: nil,
			op:    OpBuild,
			from:  Initial,
			want:  ErrStageUnset,
		},
		{
			name:  "vertex then fragment",
			steps: []Step{{Op: OpSetVertexStage}, {Op: OpSetFragmentStage}},
			op:    OpSetFragmentStage,
			from:  Progress{Stage: StageVertex},
			want:  ErrStageAlreadySet,
		},
		{
			name:  "texture twice",
			steps: []Step{{Op: OpSetFragmentStage}, {Op: OpSetTexture, Texture: "a"}, {Op: OpSetTexture, Texture: "b"}},
			op:    OpSetTexture,
			from:  Progress{Stage: StageFragment, Texture: TextureSet},
			want:  ErrTextureAlreadySet,
		},
		{
			name:  "texture before stage",
			steps: []Step{{Op: OpSetTexture, Texture: "tex"}},
			op:    OpSetTexture,
			from:  Initial,
			want:  ErrTextureNeedsFragment,
		},
		{
			name:  "step after build",
			steps: []Step{{Op: OpSetVertexStage}, {Op: OpBuild}, {Op: OpBuild}},
			op:    OpBuild,
			from:  Progress{Stage: StageVertex},
			want:  ErrConsumed,
		},
		{
			name:  "texture argument on stage step",
			steps: []Step{{Op: OpSetVertexStage, Texture: "x"}},
			op:    OpSetVertexStage,
			from:  Initial,
			want:  ErrTextureArgument,
		},
		{
			name:  "unknown op",
			steps: []Step{{Op: Op(42)}},
			op:    Op(42),
			from:  Initial,
			want:  ErrUnknownOp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Run(tt.steps)
			require.Error(t, err)
			assert.True(t, s.IsZero(), "failed run returned %v", s)
			assert.ErrorIs(t, err, tt.want)

			var te *TransitionError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.op, te.Op)
			assert.Equal(t, tt.from, te.From)
		})
	}
}

func TestRejectedStepLeavesProgress(t *testing.T) {
	m := New()
	require.NoError(t, m.SetVertexStage())
	require.Error(t, m.SetTexture("x"))

	assert.Equal(t, Progress{Stage: StageVertex}, m.Progress())
	assert.Equal(t, []Op{OpSetVertexStage}, m.History())

	s, err := m.Build()
	require.NoError(t, err)
	assert.Equal(t, shaderstage.StageVertex, s.Stage())
}

func TestMachineConsumedByBuild(t *testing.T) {
	m := New()
	require.NoError(t, m.SetFragmentStage())
	_, err := m.Build()
	require.NoError(t, err)

	assert.ErrorIs(t, m.SetTexture("late"), ErrConsumed)
	_, err = m.Build()
	assert.ErrorIs(t, err, ErrConsumed)
	assert.Equal(t, []Op{OpSetFragmentStage, OpBuild}, m.History())
}

func TestApplyBuildStoresProduct(t *testing.T) {
	m := New()
	_, built := m.Product()
	assert.False(t, built)

	require.NoError(t, m.Apply(Step{Op: OpSetVertexStage}))
	require.NoError(t, m.Apply(Step{Op: OpBuild}))

	s, built := m.Product()
	require.True(t, built)
	assert.Equal(t, shaderstage.StageVertex, s.Stage())
}

func TestMachineLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Run([]Step{{Op: OpSetFragmentStage}, {Op: OpSetTexture, Texture: "tex"}}, WithLogger(logger), WithName("frag"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "shader=frag")
	assert.Contains(t, out, "op=set_texture")
	assert.Contains(t, out, "(fragment,set)")
	assert.Contains(t, out, "shader built")
}

func TestTransitionTable(t *testing.T) {
	reachable := map[Progress]bool{Initial: true}
	for _, tr := range Transitions() {
		assert.True(t, reachable[tr.From], "%s leaves unreachable %s", tr.Op, tr.From)
		reachable[tr.To] = true
	}
	assert.ElementsMatch(t, States(), keys(reachable))

	for _, p := range States() {
		assert.Equal(t, p != Initial, p.Terminal(), "terminal(%s)", p)
	}
}

func TestTransitionsReturnsCopy(t *testing.T) {
	tr := Transitions()
	tr[0].To = Initial
	assert.Equal(t, Progress{Stage: StageVertex}, Transitions()[0].To)
}

func TestParseOp(t *testing.T) {
	for op, name := range opNames {
		got, err := ParseOp(name)
		require.NoError(t, err)
		assert.Equal(t, op, got)
	}

	got, err := ParseOp(" Set-Texture ")
	require.NoError(t, err)
	assert.Equal(t, OpSetTexture, got)

	_, err = ParseOp("set_geometry_stage")
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestOpText(t *testing.T) {
	text, err := OpSetFragmentStage.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "set_fragment_stage", string(text))

	var op Op
	require.NoError(t, op.UnmarshalText([]byte("build")))
	assert.Equal(t, OpBuild, op)

	_, err = Op(0).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestTransitionErrorMessage(t *testing.T) {
	err := &TransitionError{Op: OpSetTexture, From: Progress{Stage: StageVertex}, Err: ErrTextureNeedsFragment}
	assert.Equal(t, "set_texture from (vertex,unset): texture requires the fragment stage", err.Error())
}

func keys(m map[Progress]bool) []Progress {
	out := make([]Progress, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
