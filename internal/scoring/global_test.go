package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
)

func TestEvaluateEmptyPlacementIsPerfectlyStable(t *testing.T) {
	truck := model.TruckDimensions{Width: 8, Length: 20, Height: 9}
	cfg := model.DefaultConfig()
	scores := Evaluate(nil, truck, cfg)
	assert.Equal(t, 100.0, scores.Stability)
	assert.Equal(t, 100.0, scores.Safety)
	assert.Equal(t, 0.0, scores.Utilization)
}

func TestEvaluateScoresStayInRange(t *testing.T) {
	truck := model.TruckDimensions{Width: 8, Length: 20, Height: 9}
	cfg := model.DefaultConfig()
	box := model.NewBox("A", 2, 2, 2, 2000, model.ZoneRegular, false, model.Stop1)
	placed := []model.PlacedBox{{Box: box, Position: geometry.Vec3{X: 0, Y: 8, Z: 0}, Orientation: geometry.OrientXY}}

	scores := Evaluate(placed, truck, cfg)
	assert.GreaterOrEqual(t, scores.Stability, 0.0)
	assert.LessOrEqual(t, scores.Stability, 100.0)
	assert.GreaterOrEqual(t, scores.Safety, 0.0)
	assert.LessOrEqual(t, scores.Safety, 100.0)
	assert.GreaterOrEqual(t, scores.Utilization, 0.0)
	assert.LessOrEqual(t, scores.Utilization, 100.0)
}

func TestSafetyPenalizesOverweight(t *testing.T) {
	truck := model.TruckDimensions{Width: 8, Length: 20, Height: 9}
	cfg := model.DefaultConfig()
	cfg.MaxWeight = 10
	box := model.NewBox("A", 1, 1, 1, 50, model.ZoneRegular, false, model.Stop1)
	placed := []model.PlacedBox{{Box: box, Position: geometry.Vec3{X: 0, Y: 0.5, Z: 0}, Orientation: geometry.OrientXY}}
	assert.Less(t, Evaluate(placed, truck, cfg).Safety, 100.0)
}

func TestSafetyPenalizesHighFragileBoxes(t *testing.T) {
	truck := model.TruckDimensions{Width: 8, Length: 20, Height: 9}
	cfg := model.DefaultConfig()
	box := model.NewBox("Frag", 1, 1, 1, 5, model.ZoneRegular, true, model.Stop1)
	placed := []model.PlacedBox{{Box: box, Position: geometry.Vec3{X: 0, Y: 8.5, Z: 0}, Orientation: geometry.OrientXY}}
	assert.Less(t, Evaluate(placed, truck, cfg).Safety, 100.0)
}

func TestUtilizationBlendsVolumeAndWeight(t *testing.T) {
	truck := model.TruckDimensions{Width: 10, Length: 10, Height: 10}
	cfg := model.DefaultConfig()
	cfg.MaxWeight = 100
	box := model.NewBox("A", 5, 5, 5, 50, model.ZoneRegular, false, model.Stop1)
	placed := []model.PlacedBox{{Box: box, Position: geometry.Vec3{X: 0, Y: 2.5, Z: 0}, Orientation: geometry.OrientXY}}

	volumePct := 100 * 125.0 / 1000.0
	weightPct := 100 * 50.0 / 100.0
	expected := 0.6*volumePct + 0.4*weightPct
	assert.InDelta(t, expected, Evaluate(placed, truck, cfg).Utilization, 1e-9)
}
