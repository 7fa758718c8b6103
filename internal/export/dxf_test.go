package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
)

func TestFloorPlanDXFWritesFile(t *testing.T) {
	truck := model.TruckDimensions{Width: 8, Length: 20, Height: 9}
	box := model.NewBox("Crate", 1, 1, 1, 10, model.ZoneRegular, false, model.Stop1)
	placed := []model.PlacedBox{{Box: box, Position: geometry.Vec3{X: 0, Y: 0.5, Z: 0}, Orientation: geometry.OrientXY}}
	path := filepath.Join(t.TempDir(), "floorplan.dxf")

	err := FloorPlanDXF(path, placed, truck)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
