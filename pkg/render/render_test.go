package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/BTBurke/spc"
	"github.com/BTBurke/spc/pkg/rule"
	"github.com/BTBurke/spc/pkg/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	data := stat.Flat(1, 2, 3, 3, 2, 1, 3, 8)
	s, err := spc.New(data, stat.XMRX, spc.WithRules(rule.All()))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf, "individuals", []*spc.Session{s}))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
}

func TestRenderSegments(t *testing.T) {
	data := stat.Flat(1, 2, 1, 2, 1, 2, 10, 11, 10, 11, 10, 11)
	sessions, err := spc.Segment(data, stat.XMRX, []int{6, 12})
	require.NoError(t, err)

	var buf bytes.Buffer
	r := &PNG{Width: 640, Height: 320}
	require.NoError(t, r.Render(&buf, "changepoints", sessions))
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
}

func TestRenderNoLimits(t *testing.T) {
	s, err := spc.New(stat.Flat(1, 1, 1), stat.EWMA)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, New().Render(&buf, "flat", []*spc.Session{s}))
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, New().Render(&buf, "", nil), ErrNoSessions)
}
