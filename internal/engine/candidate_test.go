package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
)

func TestGenerateCandidatesOnlyFittingOrientations(t *testing.T) {
	void := model.NewVoid(geometry.Vec3{}, geometry.Vec3{X: 2, Y: 10, Z: 2})
	box := model.NewBox("A", 2, 10, 2, 5, model.ZoneRegular, false, model.Stop1)
	cands := generateCandidates(void, box)
	assert.NotEmpty(t, cands)
	for _, c := range cands {
		ext := c.orientation.Extents(box.Width, box.Height, box.Length)
		assert.LessOrEqual(t, ext.X, void.Extents.X+1e-9)
		assert.LessOrEqual(t, ext.Y, void.Extents.Y+1e-9)
		assert.LessOrEqual(t, ext.Z, void.Extents.Z+1e-9)
	}
}

func TestGenerateCandidatesNoneWhenTooBig(t *testing.T) {
	void := model.NewVoid(geometry.Vec3{}, geometry.Vec3{X: 1, Y: 1, Z: 1})
	box := model.NewBox("A", 5, 5, 5, 5, model.ZoneRegular, false, model.Stop1)
	cands := generateCandidates(void, box)
	assert.Empty(t, cands)
}

func TestSampleOffsetsIncludesZero(t *testing.T) {
	offsets := sampleOffsets(6)
	assert.Contains(t, offsets, 0.0)
	assert.Len(t, offsets, maxSamplesPerAxis)
}

func TestSampleOffsetsZeroSlackIsSingleZero(t *testing.T) {
	offsets := sampleOffsets(0)
	assert.Equal(t, []float64{0}, offsets)
}
