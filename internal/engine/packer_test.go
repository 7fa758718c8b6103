package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetpack/truckload/internal/model"
)

func TestPackPlacesSingleFittingBox(t *testing.T) {
	truck := model.TruckDimensions{Width: 8, Length: 20, Height: 9}
	box := model.NewBox("A", 1, 1, 1, 10, model.ZoneRegular, false, model.Stop1)
	cfg := model.DefaultConfig()

	placed, unplaced := Pack([]model.Box{box}, truck, cfg)
	require.Len(t, placed, 1)
	assert.Empty(t, unplaced)
	assert.Equal(t, box.ID, placed[0].Box.ID)
}

func TestPackReportsUnplaceableOversizedBox(t *testing.T) {
	truck := model.TruckDimensions{Width: 2, Length: 2, Height: 2}
	box := model.NewBox("TooBig", 100, 100, 100, 10, model.ZoneRegular, false, model.Stop1)
	cfg := model.DefaultConfig()

	placed, unplaced := Pack([]model.Box{box}, truck, cfg)
	assert.Empty(t, placed)
	require.Len(t, unplaced, 1)
}

func TestPackNeverOverlapsPlacedBoxes(t *testing.T) {
	truck := model.TruckDimensions{Width: 4, Length: 4, Height: 4}
	cfg := model.DefaultConfig()
	var boxes []model.Box
	for i := 0; i < 8; i++ {
		boxes = append(boxes, model.NewBox("Cube", 1, 1, 1, 5, model.ZoneRegular, false, model.Stop1))
	}

	placed, _ := Pack(boxes, truck, cfg)
	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			vol := overlapVolumeOf(placed[i], placed[j])
			assert.LessOrEqual(t, vol, cfg.Epsilon*cfg.Epsilon*cfg.Epsilon)
		}
	}
}

func TestPackRespectsWeightCapacity(t *testing.T) {
	truck := model.TruckDimensions{Width: 20, Length: 20, Height: 20}
	cfg := model.DefaultConfig()
	cfg.MaxWeight = 25

	var boxes []model.Box
	for i := 0; i < 5; i++ {
		boxes = append(boxes, model.NewBox("Heavy", 1, 1, 1, 10, model.ZoneRegular, false, model.Stop1))
	}

	placed, _ := Pack(boxes, truck, cfg)
	var total float64
	for _, p := range placed {
		total += p.Box.Weight
	}
	assert.LessOrEqual(t, total, cfg.MaxWeight+cfg.Epsilon)
}

func TestPackIsDeterministic(t *testing.T) {
	truck := model.TruckDimensions{Width: 8, Length: 20, Height: 9}
	cfg := model.DefaultConfig()
	boxes := []model.Box{
		model.NewBox("A", 2, 2, 2, 10, model.ZoneRegular, false, model.Stop2),
		model.NewBox("B", 1, 1, 1, 5, model.ZoneCold, false, model.Stop1),
		model.NewBox("C", 3, 1, 2, 20, model.ZoneRegular, true, model.Stop3),
	}

	placed1, unplaced1 := Pack(boxes, truck, cfg)
	placed2, unplaced2 := Pack(boxes, truck, cfg)

	require.Equal(t, len(placed1), len(placed2))
	for i := range placed1 {
		assert.Equal(t, placed1[i].Position, placed2[i].Position)
		assert.Equal(t, placed1[i].Orientation, placed2[i].Orientation)
	}
	assert.Equal(t, len(unplaced1), len(unplaced2))
}

func overlapVolumeOf(a, b model.PlacedBox) float64 {
	aAABB, bAABB := a.AABB(), b.AABB()
	aMin, aMax := aAABB.Min(), aAABB.Max()
	bMin, bMax := bAABB.Min(), bAABB.Max()

	dx := min(aMax.X, bMax.X) - max(aMin.X, bMin.X)
	dy := min(aMax.Y, bMax.Y) - max(aMin.Y, bMin.Y)
	dz := min(aMax.Z, bMax.Z) - max(aMin.Z, bMin.Z)
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}
	return dx * dy * dz
}
