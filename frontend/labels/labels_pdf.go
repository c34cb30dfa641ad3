package labels

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"binlabeler/models"
)

// 3"x1" labels laid out in a grid on landscape Letter.
const (
	labelWidth   = 3.0
	labelHeight  = 1.0
	pageMargin   = 0.5
	labelGutter  = 0.1
	swatchWidth  = 0.08
	leftSideX    = 0.2
	rightSideX   = 1.6
	barcodeWidth = 1.1
)

// renderLabelsPDF renders the serialized label sequence into the printable
// document. Layout follows the shop's label stock: bordered 3"x1" cells,
// left side content at 0.2" and right side content at 1.6" into the cell,
// with a workstation color swatch on the cell's left edge and a code128
// part number barcode in each populated side's top strip.
func renderLabelsPDF(records []models.Label) ([]byte, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no labels to render")
	}

	pdf := gofpdf.New("L", "in", "Letter", "")
	pdf.SetTitle("Bin Labels", false)
	pdf.SetAutoPageBreak(false, 0)

	pageW, pageH := pdf.GetPageSize()
	perRow := int((pageW - 2*pageMargin + labelGutter) / (labelWidth + labelGutter))
	perColumn := int((pageH - 2*pageMargin + labelGutter) / (labelHeight + labelGutter))
	if perRow < 1 {
		perRow = 1
	}
	if perColumn < 1 {
		perColumn = 1
	}
	perPage := perRow * perColumn

	registered := make(map[string]bool)
	for idx, record := range records {
		cell := idx % perPage
		if cell == 0 {
			pdf.AddPage()
		}
		row := cell / perRow
		col := cell % perRow
		x := pageMargin + float64(col)*(labelWidth+labelGutter)
		y := pageMargin + float64(row)*(labelHeight+labelGutter)
		drawLabelCell(pdf, record, x, y, registered)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func drawLabelCell(pdf *gofpdf.Fpdf, record models.Label, x, y float64, registered map[string]bool) {
	pdf.SetLineWidth(0.01)
	pdf.SetDrawColor(0, 0, 0)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	if r, g, b, ok := parseHexColor(record.WorkstationColor); ok {
		pdf.SetFillColor(r, g, b)
		pdf.Rect(x, y, swatchWidth, labelHeight, "F")
	}

	drawLabelSide(pdf, record.Left, x+leftSideX, y, registered)
	drawLabelSide(pdf, record.Right, x+rightSideX, y, registered)
}

func drawLabelSide(pdf *gofpdf.Fpdf, side models.PartSide, x, y float64, registered map[string]bool) {
	if side.Blank() {
		return
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(x, y+0.30, side.PartNumber)

	pdf.SetFont("Helvetica", "", 8)
	if side.AltPartNumber != "" {
		pdf.Text(x, y+0.45, side.AltPartNumber)
	}
	pdf.Text(x, y+0.60, "Qty: "+side.Quantity)
	pdf.Text(x, y+0.75, side.AFrameLocation)

	drawPartBarcode(pdf, side.PartNumber, x, y+0.04, registered)
}

// drawPartBarcode puts a scannable code128 of the part number in the side's
// top strip. Part numbers the symbology cannot encode simply go without.
func drawPartBarcode(pdf *gofpdf.Fpdf, value string, x, y float64, registered map[string]bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	imageName := "part-code128-" + value
	if !registered[imageName] {
		barcodePNG, err := renderCode128PNG(value, 600, 90)
		if err != nil {
			return
		}
		opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
		registered[imageName] = true
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.ImageOptions(imageName, x, y, barcodeWidth, 0.14, false, opt, 0, "")
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

// parseHexColor parses #rgb or #rrggbb workstation colors.
func parseHexColor(value string) (r, g, b int, ok bool) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(value) {
	case 3:
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(parsed >> 16 & 0xff), int(parsed >> 8 & 0xff), int(parsed & 0xff), true
}
