package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/signintech/gopdf"

	"psyfind/internal/assessment"
	"psyfind/internal/dsm"
)

// PDFDocument is the material rendered into an exported report.
type PDFDocument struct {
	SessionID   string
	Language    string
	GeneratedAt time.Time
	Results     []assessment.Result
	Candidates  []dsm.Candidate
	ReportText  string
}

// PDFExporter renders screening reports to PDF. Only the redacted report
// text should ever be passed in.
type PDFExporter struct {
	fontPaths []string
}

func NewPDFExporter() *PDFExporter {
	// Common DejaVu locations; the font covers CJK poorly but keeps
	// Latin reports readable on Alpine and Debian images.
	return &PDFExporter{
		fontPaths: []string{
			"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		},
	}
}

func (e *PDFExporter) Export(doc PDFDocument) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range e.fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Mental Health Screening Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", doc.GeneratedAt.Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Session: %s", doc.SessionID))
	pdf.Br(25)

	if len(doc.Results) > 0 {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Instrument Scores:")
		pdf.Br(15)

		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		for _, res := range doc.Results {
			line := fmt.Sprintf("- %s: %d/%d (%s)", strings.ToUpper(res.InstrumentID), res.Total, res.MaxScore, res.Severity)
			pdf.Cell(nil, line)
			pdf.Br(12)
		}
		pdf.Br(10)
	}

	if len(doc.Candidates) > 0 {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Differential Considerations:")
		pdf.Br(15)

		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		for _, cand := range doc.Candidates {
			line := fmt.Sprintf("- %s (%s) %.1f%%", cand.Disorder, cand.Code, cand.Confidence)
			lines, _ := pdf.SplitText(line, 500)
			for _, l := range lines {
				pdf.Cell(nil, l)
				pdf.Br(12)
			}
		}
		pdf.Br(10)
	}

	if doc.ReportText != "" {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Clinical Analysis:")
		pdf.Br(15)
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}

		for _, paragraph := range strings.Split(doc.ReportText, "\n") {
			paragraph = strings.TrimSpace(paragraph)
			if paragraph == "" {
				pdf.Br(6)
				continue
			}
			lines, _ := pdf.SplitText(paragraph, 500)
			for _, l := range lines {
				pdf.Cell(nil, l)
				pdf.Br(12)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}
