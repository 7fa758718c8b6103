package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetpack/truckload/internal/model"
)

func box(label string, weight float64, fragile bool, dest model.Destination) model.PlacedBox {
	return model.PlacedBox{Box: model.NewBox(label, 1, 1, 1, weight, model.ZoneRegular, fragile, dest)}
}

func TestGenerateOrdersByDestinationRankFirst(t *testing.T) {
	a := box("A", 10, false, model.Stop1)
	b := box("B", 10, false, model.Stop4)
	out := Generate([]model.PlacedBox{a, b})
	assert.Equal(t, "B", out[0].Box.Label)
	assert.Equal(t, "A", out[1].Box.Label)
}

func TestGenerateOrdersNonFragileBeforeFragileWithinSameDestination(t *testing.T) {
	fragile := box("Fragile", 10, true, model.Stop1)
	sturdy := box("Sturdy", 10, false, model.Stop1)
	out := Generate([]model.PlacedBox{fragile, sturdy})
	assert.Equal(t, "Sturdy", out[0].Box.Label)
	assert.Equal(t, "Fragile", out[1].Box.Label)
}

func TestGenerateOrdersHeavierFirstWithinSameDestinationAndFragility(t *testing.T) {
	light := box("Light", 5, false, model.Stop1)
	heavy := box("Heavy", 50, false, model.Stop1)
	out := Generate([]model.PlacedBox{light, heavy})
	assert.Equal(t, "Heavy", out[0].Box.Label)
	assert.Equal(t, "Light", out[1].Box.Label)
}

func TestGenerateDoesNotMutateInput(t *testing.T) {
	a := box("A", 10, false, model.Stop1)
	b := box("B", 10, false, model.Stop4)
	input := []model.PlacedBox{a, b}
	Generate(input)
	assert.Equal(t, "A", input[0].Box.Label)
}
