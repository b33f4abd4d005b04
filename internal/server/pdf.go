package server

import (
    "fmt"
    "io"
    "net/http"

    "github.com/jung-kurt/gofpdf"
    "github.com/rs/zerolog"

    "wikiquiz/internal/store"
)

// handlePDF renders a stored quiz as a printable PDF: the questions with
// their options first, then an answer key with explanations.
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
    rec, ok := s.lookupByID(w, r)
    if !ok {
        return
    }
    w.Header().Set("Content-Type", "application/pdf")
    w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("quiz-%d.pdf", rec.ID)))
    if err := writeQuizPDF(w, rec); err != nil {
        zerolog.Ctx(r.Context()).Error().Err(err).Uint("id", rec.ID).Msg("pdf render failed")
    }
}

func writeQuizPDF(w io.Writer, rec *store.Record) error {
    pdf := gofpdf.New("P", "mm", "A4", "")
    pdf.AddPage()

    pdf.SetFont("Helvetica", "B", 16)
    pdf.MultiCell(0, 8, rec.Title+" Quiz", "", "L", false)
    pdf.Ln(2)
    if rec.Summary != "" {
        pdf.SetFont("Helvetica", "I", 10)
        pdf.MultiCell(0, 5, rec.Summary, "", "L", false)
        pdf.Ln(3)
    }

    pdf.SetFont("Helvetica", "", 11)
    for i, q := range rec.Questions {
        pdf.SetFont("Helvetica", "B", 11)
        pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, q.Question), "", "L", false)
        pdf.SetFont("Helvetica", "", 11)
        for _, opt := range q.Options {
            pdf.MultiCell(0, 5, "    "+opt, "", "L", false)
        }
        if q.Section != "" {
            pdf.SetFont("Helvetica", "I", 9)
            pdf.MultiCell(0, 5, fmt.Sprintf("Section: %s / Difficulty: %s", q.Section, q.Difficulty), "", "L", false)
            pdf.SetFont("Helvetica", "", 11)
        }
        pdf.Ln(3)
    }

    pdf.AddPage()
    pdf.SetFont("Helvetica", "B", 14)
    pdf.MultiCell(0, 8, "Answer key", "", "L", false)
    pdf.SetFont("Helvetica", "", 11)
    for i, q := range rec.Questions {
        pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, q.Answer), "", "L", false)
        if q.Explanation != "" {
            pdf.SetFont("Helvetica", "I", 9)
            pdf.MultiCell(0, 5, "    "+q.Explanation, "", "L", false)
            pdf.SetFont("Helvetica", "", 11)
        }
    }

    if len(rec.RelatedTopics) > 0 {
        pdf.Ln(4)
        pdf.SetFont("Helvetica", "B", 12)
        pdf.MultiCell(0, 6, "Further reading", "", "L", false)
        pdf.SetFont("Helvetica", "", 11)
        for _, topic := range rec.RelatedTopics {
            pdf.MultiCell(0, 5, "- "+topic, "", "L", false)
        }
    }

    return pdf.Output(w)
}
