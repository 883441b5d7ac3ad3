package certificate

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// PDFExporter renders certificates as A4 landscape PDF documents.
type PDFExporter struct {
	// DateLayout formats the issue date. Defaults to "January 2, 2006".
	DateLayout string
}

func (e PDFExporter) Export(ctx context.Context, req Request, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	layout := e.DateLayout
	if layout == "" {
		layout = "January 2, 2006"
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetAuthor(Signatory, true)
	pdf.SetCreationDate(req.Date)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()

	// Double border.
	pdf.SetDrawColor(30, 64, 175)
	pdf.SetLineWidth(2)
	pdf.Rect(10, 10, pageW-20, pageH-20, "D")
	pdf.SetLineWidth(0.5)
	pdf.Rect(15, 15, pageW-30, pageH-30, "D")

	center := func(y float64, size float64, style string, rgb [3]int, text string) {
		pdf.SetY(y)
		pdf.SetFont("Helvetica", style, size)
		pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
		pdf.CellFormat(0, size*0.5, tr(text), "", 1, "C", false, 0, "")
	}

	dark := [3]int{30, 41, 59}
	muted := [3]int{100, 116, 139}
	accent := [3]int{30, 64, 175}

	center(38, 32, "B", accent, Title)
	center(62, 14, "", muted, "This certifies that")
	center(76, 30, "B", dark, req.HolderName)
	center(100, 14, "", muted, "has successfully completed the")
	center(112, 20, "B", dark, QuizName)
	center(130, 14, "", muted, fmt.Sprintf("with a score of %d%%", req.Score))
	center(140, 12, "", muted, "on "+req.Date.Format(layout))

	// Signature line.
	lineY := pageH - 45
	pdf.SetDrawColor(dark[0], dark[1], dark[2])
	pdf.Line(pageW/2-50, lineY, pageW/2+50, lineY)
	center(lineY+3, 12, "I", dark, Signatory)

	if req.Serial != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(muted[0], muted[1], muted[2])
		pdf.SetXY(20, pageH-25)
		pdf.CellFormat(0, 5, "Certificate No. "+req.Serial, "", 0, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render certificate: %w", err)
	}
	return nil
}
