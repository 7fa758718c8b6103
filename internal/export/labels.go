package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/fleetpack/truckload/internal/model"
)

// LabelInfo holds the data encoded into each box label's QR code.
type LabelInfo struct {
	BoxID       string  `json:"id"`
	Label       string  `json:"label"`
	Destination string  `json:"destination"`
	Zone        string  `json:"zone"`
	Weight      float64 `json:"weight_kg"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page), matching the teacher's QR label sheet.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// BoxLabels generates a PDF of QR-coded labels for every placed box, one
// label per box, laid out on an Avery 5160-compatible sheet. Each QR code
// encodes the box's ID, destination, zone, weight, and final position so a
// handheld scanner can verify placement during loading.
func BoxLabels(path string, placed []model.PlacedBox) error {
	if len(placed) == 0 {
		return fmt.Errorf("no boxes placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, p := range placed {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		info := LabelInfo{
			BoxID:       p.Box.ID,
			Label:       p.Box.Label,
			Destination: p.Box.Destination.String(),
			Zone:        p.Box.TemperatureZone.String(),
			Weight:      p.Box.Weight,
			X:           p.Position.X,
			Y:           p.Position.Y,
			Z:           p.Position.Z,
		}
		if err := renderLabel(pdf, x, y, info); err != nil {
			return fmt.Errorf("render label for %q: %w", info.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", info.BoxID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	label := info.Label
	if pdf.GetStringWidth(label) > textW {
		for len(label) > 0 && pdf.GetStringWidth(label+"...") > textW {
			label = label[:len(label)-1]
		}
		label += "..."
	}
	pdf.CellFormat(textW, 4.5, label, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s / %s", info.Destination, info.Zone), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pos := fmt.Sprintf("(%.1f, %.1f, %.1f)  %.1f kg", info.X, info.Y, info.Z, info.Weight)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a placement for
// testing or alternative export formats.
func CollectLabelInfos(placed []model.PlacedBox) []LabelInfo {
	labels := make([]LabelInfo, 0, len(placed))
	for _, p := range placed {
		labels = append(labels, LabelInfo{
			BoxID:       p.Box.ID,
			Label:       p.Box.Label,
			Destination: p.Box.Destination.String(),
			Zone:        p.Box.TemperatureZone.String(),
			Weight:      p.Box.Weight,
			X:           p.Position.X,
			Y:           p.Position.Y,
			Z:           p.Position.Z,
		})
	}
	return labels
}
