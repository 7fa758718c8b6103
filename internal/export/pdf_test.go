package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetpack/truckload/internal/geometry"
	"github.com/fleetpack/truckload/internal/model"
)

func samplePlacement() model.PlacementResult {
	box := model.NewBox("Crate", 1, 1, 1, 10, model.ZoneRegular, false, model.Stop1)
	placed := model.PlacedBox{Box: box, Position: geometry.Vec3{X: 0, Y: 0.5, Z: 0}, Orientation: geometry.OrientXY}
	return model.PlacementResult{
		Placed:          []model.PlacedBox{placed},
		LoadingSequence: []model.PlacedBox{placed},
		Scores:          model.Scores{Stability: 90, Safety: 95, Utilization: 40},
	}
}

func TestManifestPDFWritesFile(t *testing.T) {
	truck := model.TruckDimensions{Width: 8, Length: 20, Height: 9}
	path := filepath.Join(t.TempDir(), "manifest.pdf")

	err := ManifestPDF(path, samplePlacement(), truck)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestManifestPDFWritesFileWithNoPlacements(t *testing.T) {
	truck := model.TruckDimensions{Width: 8, Length: 20, Height: 9}
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ManifestPDF(path, model.PlacementResult{}, truck)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestGroupByLayerBucketsByHeight(t *testing.T) {
	low := model.NewBox("Low", 1, 1, 1, 10, model.ZoneRegular, false, model.Stop1)
	high := model.NewBox("High", 1, 1, 1, 10, model.ZoneRegular, false, model.Stop1)
	placed := []model.PlacedBox{
		{Box: low, Position: geometry.Vec3{X: 0, Y: 0.5, Z: 0}, Orientation: geometry.OrientXY},
		{Box: high, Position: geometry.Vec3{X: 0, Y: 3.5, Z: 0}, Orientation: geometry.OrientXY},
	}

	layers := groupByLayer(placed)
	require.Len(t, layers, 2)
	assert.Equal(t, "Low", layers[0].boxes[0].Box.Label)
	assert.Equal(t, "High", layers[1].boxes[0].Box.Label)
	assert.Less(t, layers[0].minY, layers[1].minY)
}

func TestBoxLabelsRejectsEmptyPlacement(t *testing.T) {
	err := BoxLabels(filepath.Join(t.TempDir(), "labels.pdf"), nil)
	assert.Error(t, err)
}

func TestBoxLabelsWritesFile(t *testing.T) {
	result := samplePlacement()
	path := filepath.Join(t.TempDir(), "labels.pdf")

	err := BoxLabels(path, result.Placed)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestCollectLabelInfosMapsFields(t *testing.T) {
	result := samplePlacement()
	infos := CollectLabelInfos(result.Placed)
	require.Len(t, infos, 1)
	assert.Equal(t, "Crate", infos[0].Label)
	assert.Equal(t, "Stop1", infos[0].Destination)
}
