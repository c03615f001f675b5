package infra

// pdf.go — end-of-day report generation using go-pdf/fpdf.
// Produces a receipt-style summary of the corte de caja:
//   - Business name header and date
//   - Expected vs counted cash, with the variance highlighted
//   - Amount withdrawn and tomorrow's opening float
//   - Operator notes, when present
//
// The output file is saved to storagePath/corte_{fecha}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateCortePDF renders the reconciliation report for a closed day.
// Returns the absolute path to the generated file.
func GenerateCortePDF(corte *model.CorteCaja, nombreNegocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("corte_%s.pdf", corte.FechaDia)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — same thermal-receipt footprint as the POS tickets.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, nombreNegocio, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Corte de Caja", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, corte.FechaDia, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Amounts ──────────────────────────────────────────────────────────────
	col1 := contentW * 0.6
	col2 := contentW * 0.4

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 8)
		pdf.CellFormat(col1, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, value, "", 1, "R", false, 0, "")
	}

	row("Esperado en caja:", "$"+corte.Esperado.StringFixed(2), false)
	row("Contado en caja:", "$"+corte.Contado.StringFixed(2), false)

	difLabel := "Diferencia:"
	if corte.Diferencia.IsNegative() {
		difLabel = "Faltante:"
	} else if corte.Diferencia.IsPositive() {
		difLabel = "Sobrante:"
	}
	row(difLabel, "$"+corte.Diferencia.StringFixed(2), true)

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	row("Retirado:", "$"+corte.MontoRetirado.StringFixed(2), false)
	row("Fondo para mañana:", "$"+corte.FondoManana.StringFixed(2), true)

	// ── Notes ────────────────────────────────────────────────────────────────
	if corte.Notas != nil && *corte.Notas != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.MultiCell(contentW, 4, "Notas: "+*corte.Notas, "", "L", false)
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 6)
	pdf.CellFormat(contentW, 4, corte.CreatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
