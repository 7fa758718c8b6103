// Package export renders a completed placement to the document formats a
// dispatcher or loading crew would actually use: a PDF manifest, printable
// box labels with QR codes, a loading-sequence workbook, and a DXF floor
// plan. It is adapted from the teacher's export package in
// _examples/piwi3910-cnc-calculator/internal/export (pdf.go, labels.go),
// generalized from 2D cut-sheet diagrams to 3D truck manifests.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/fleetpack/truckload/internal/model"
)

// boxColor is an RGB fill color for a placed box's footprint.
type boxColor struct {
	R, G, B int
}

// boxColors mirrors the teacher's partColors palette for sheet diagrams.
var boxColors = []boxColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm), matching the teacher's layout
// constant block.
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0

	// layerBandHeight buckets placed boxes into floor-plan pages by their
	// center's y coordinate, the same way the teacher pages one sheet per
	// stock piece.
	layerBandHeight = 2.0
)

// ManifestPDF writes a loading manifest booklet: one floor-plan page per
// truck layer band with drawn box footprints to scale, followed by a
// summary page with the three scores and the loading-sequence table.
func ManifestPDF(path string, result model.PlacementResult, truck model.TruckDimensions) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, layer := range groupByLayer(result.Placed) {
		pdf.AddPage()
		renderLayerPage(pdf, layer, truck, i+1)
	}

	pdf.AddPage()
	renderSummary(pdf, result, truck)
	renderLoadingTable(pdf, result.LoadingSequence)
	if len(result.Unplaced) > 0 {
		renderUnplaced(pdf, result.Unplaced)
	}

	return pdf.OutputFileAndClose(path)
}

// layer is one y-band's worth of placed boxes, for a single floor-plan page.
type layer struct {
	minY, maxY float64
	boxes      []model.PlacedBox
}

// groupByLayer buckets placed boxes by their vertical band (§ ManifestPDF
// layer paging) and returns the bands in ascending height order.
func groupByLayer(placed []model.PlacedBox) []layer {
	bands := make(map[int][]model.PlacedBox)
	for _, p := range placed {
		idx := int(math.Floor(p.Position.Y / layerBandHeight))
		bands[idx] = append(bands[idx], p)
	}

	indices := make([]int, 0, len(bands))
	for idx := range bands {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	layers := make([]layer, 0, len(indices))
	for _, idx := range indices {
		layers = append(layers, layer{
			minY:  float64(idx) * layerBandHeight,
			maxY:  float64(idx+1) * layerBandHeight,
			boxes: bands[idx],
		})
	}
	return layers
}

// renderLayerPage draws one layer's top-down (x, z) footprint diagram,
// mirroring the teacher's renderSheetPage: a scaled background rectangle for
// the truck floor, one colored rectangle per box footprint, and a legend.
func renderLayerPage(pdf *fpdf.Fpdf, l layer, truck model.TruckDimensions, layerNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Layer %d (y: %.1f - %.1f m)", layerNum, l.minY, l.maxY)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boxes: %d | Truck floor: %.1f x %.1f m", len(l.boxes), truck.Width, truck.Length)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scaleX := drawWidth / truck.Width
	scaleZ := drawHeight / truck.Length
	scale := math.Min(scaleX, scaleZ)

	canvasW := truck.Width * scale
	canvasH := truck.Length * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range l.boxes {
		extents := p.Extents()
		fx := truck.Width/2 + p.Position.X - extents.X/2
		fz := truck.Length/2 + p.Position.Z - extents.Z/2

		bx := offsetX + fx*scale
		bz := offsetY + fz*scale
		bw := extents.X * scale
		bh := extents.Z * scale

		col := boxColors[i%len(boxColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(bx, bz, bw, bh, "FD")

		if bw > 12 && bh > 6 {
			pdf.SetFont("Helvetica", "", 7)
			pdf.SetTextColor(0, 0, 0)
			labelW := pdf.GetStringWidth(p.Box.Label)
			if labelW < bw-2 {
				pdf.SetXY(bx+(bw-labelW)/2, bz+bh/2-2)
				pdf.CellFormat(labelW, 4, p.Box.Label, "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(marginLeft, offsetY+canvasH+5)
	pdf.CellFormat(drawWidth, 5, "Door (+z) at bottom of diagram; x runs left to right.", "", 0, "L", false, 0, "")
}

func renderSummary(pdf *fpdf.Fpdf, result model.PlacementResult, truck model.TruckDimensions) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Loading manifest: %.0f x %.0f x %.0f truck", truck.Width, truck.Height, truck.Length)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(marginLeft)
	stats := fmt.Sprintf("Placed: %d | Unplaced: %d | Stability %.0f | Safety %.0f | Utilization %.0f",
		len(result.Placed), len(result.Unplaced), result.Scores.Stability, result.Scores.Safety, result.Scores.Utilization)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 7, stats, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func renderLoadingTable(pdf *fpdf.Fpdf, sequence []model.PlacedBox) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(marginLeft)
	headers := []string{"Seq", "Label", "Destination", "Zone", "Weight", "Position"}
	widths := []float64{12, 45, 30, 25, 25, 45}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range sequence {
		pdf.SetX(marginLeft)
		pos := fmt.Sprintf("(%.1f, %.1f, %.1f)", p.Position.X, p.Position.Y, p.Position.Z)
		row := []string{
			fmt.Sprintf("%d", i+1),
			p.Box.Label,
			p.Box.Destination.String(),
			p.Box.TemperatureZone.String(),
			fmt.Sprintf("%.1f", p.Box.Weight),
			pos,
		}
		for j, cell := range row {
			pdf.CellFormat(widths[j], 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func renderUnplaced(pdf *fpdf.Fpdf, unplaced []model.Box) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(marginLeft)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 7, "Unplaced boxes", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, b := range unplaced {
		pdf.SetX(marginLeft)
		line := fmt.Sprintf("%s  (%.1f x %.1f x %.1f, %.1f kg)", b.Label, b.Width, b.Height, b.Length, b.Weight)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, line, "", 1, "L", false, 0, "")
	}
}
