package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordStage struct {
	name  string
	calls *[]string
	err   error
}

func (s *recordStage) Process(_ *Image) error {
	*s.calls = append(*s.calls, s.name)
	return s.err
}

func TestPipeline(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	img := New(solid(1, 1, color.NRGBA{}))
	err := img.Pipeline(
		&recordStage{name: "a", calls: &calls},
		&recordStage{name: "b", calls: &calls, err: boom},
		&recordStage{name: "c", calls: &calls},
	)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestNewFromReader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(2, 3, color.NRGBA{5, 6, 7, 255})))

	img, err := NewFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 3), img.Bounds)

	_, err = NewFromReader(bytes.NewBufferString("nope"))
	assert.ErrorIs(t, err, ErrDecode)
}
