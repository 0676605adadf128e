package printer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

var ErrNoCodes = errors.New("at least one code is required")

// SheetConfig describes one A4 sheet of QR labels for storage units
// (cells or boxes). Zero layout values fall back to a 4x10 grid.
type SheetConfig struct {
	Codes      []string `json:"codes"`
	Kind       string   `json:"kind"` // printed top-right on each label, e.g. "cell" or "box"
	Cols       int      `json:"cols"`
	Rows       int      `json:"rows"`
	MarginTop  float64  `json:"margin_top"`
	MarginLeft float64  `json:"margin_left"`
	GapX       float64  `json:"gap_x"`
	GapY       float64  `json:"gap_y"`
}

func (c *SheetConfig) applyDefaults() {
	if c.Cols < 1 {
		c.Cols = 4
	}
	if c.Rows < 1 {
		c.Rows = 10
	}
	if c.MarginTop == 0 {
		c.MarginTop = 10
	}
	if c.MarginLeft == 0 {
		c.MarginLeft = 8
	}
}

// GenerateSheet renders one QR label per code onto A4 pages and returns
// the PDF bytes.
func GenerateSheet(cfg SheetConfig) ([]byte, error) {
	if len(cfg.Codes) == 0 {
		return nil, ErrNoCodes
	}
	cfg.applyDefaults()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)

	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY
	availW := pageWidth - cfg.MarginLeft*2
	availH := pageHeight - cfg.MarginTop*2
	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	labelsPerPage := cfg.Cols * cfg.Rows

	for i, code := range cfg.Codes {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols
		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		qrPng, err := qrcode.Encode(code, qrcode.Low, 256)
		if err != nil {
			return nil, fmt.Errorf("encoding qr for %q: %w", code, err)
		}

		imgName := fmt.Sprintf("qr_%d", i)
		imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(imgName, imgOptions, bytes.NewReader(qrPng))

		// QR centered, taking up 70% of the label height.
		qrSize := labelH * 0.7
		if qrSize > labelW {
			qrSize = labelW * 0.9
		}
		qrX := x + (labelW-qrSize)/2
		qrY := y + (labelH-qrSize)/2 - 2
		pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, imgOptions, 0, "")

		pdf.SetXY(x, y+labelH-6)
		pdf.SetFontSize(8)
		pdf.CellFormat(labelW, 5, code, "", 0, "C", false, 0, "")

		if cfg.Kind != "" {
			pdf.SetXY(x, y+1)
			pdf.SetFontSize(6)
			pdf.CellFormat(labelW, 3, cfg.Kind, "", 0, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
