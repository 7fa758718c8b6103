package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/fleetpack/truckload/internal/model"
)

// FloorPlanDXF writes a top-down (x, z) floor plan of the placement: the
// truck's outline plus one rectangle per placed box's footprint, labeled
// with the box's label. It mirrors the teacher's DXF entity handling in
// _examples/piwi3910-cnc-calculator/internal/importer/dxf.go, adapted from
// reading LINE/LWPOLYLINE entities to writing LINE and TEXT entities.
func FloorPlanDXF(path string, placed []model.PlacedBox, truck model.TruckDimensions) error {
	d := dxf.NewDrawing()

	halfW, halfL := truck.Width/2, truck.Length/2
	drawRect(d, -halfW, -halfL, halfW, halfL)

	for _, p := range placed {
		extents := p.Extents()
		minX := p.Position.X - extents.X/2
		maxX := p.Position.X + extents.X/2
		minZ := p.Position.Z - extents.Z/2
		maxZ := p.Position.Z + extents.Z/2
		drawRect(d, minX, minZ, maxX, maxZ)
		d.Text(p.Box.Label, minX, minZ, 0.3)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save floor plan: %w", err)
	}
	return nil
}

// drawRect emits the four edges of an axis-aligned rectangle as LINE
// entities on the z=0 plane.
func drawRect(d *dxf.Drawing, minX, minZ, maxX, maxZ float64) {
	d.Line(minX, minZ, 0, maxX, minZ, 0)
	d.Line(maxX, minZ, 0, maxX, maxZ, 0)
	d.Line(maxX, maxZ, 0, minX, maxZ, 0)
	d.Line(minX, maxZ, 0, minX, minZ, 0)
}
