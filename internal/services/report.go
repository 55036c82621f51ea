package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/TejasKabotula/youtube-genai-learning/internal/domain"
)

// ReportService renders one video's full analysis bundle as a PDF.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

func (s *ReportService) GenerateReport(video domain.Video, summaries []domain.Summary, questions []domain.Question, clarifications []domain.Clarification) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Analysis Report %s", video.ID), false)
	pdf.SetAuthor("youtube-genai-learning", false)
	pdf.AddPage()

	title := video.Title
	if strings.TrimSpace(title) == "" {
		title = "Video Analysis"
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, title, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Language: %s", video.Language))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Created: %s", time.Unix(video.CreatedAt, 0).Format("2006-01-02 15:04")))
	pdf.Ln(10)

	if len(video.Topics) > 0 {
		s.writeHeading(pdf, "Topics")
		for _, topic := range video.Topics {
			line := fmt.Sprintf("%s (%s - %s): %s", topic.Topic, formatTimestamp(topic.Start), formatTimestamp(topic.End), topic.KeyInsight)
			pdf.MultiCell(0, 6, "- "+line, "", "L", false)
		}
		pdf.Ln(6)
	}

	if len(summaries) > 0 {
		s.writeHeading(pdf, "Summaries")
		for _, summary := range summaries {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.Cell(0, 7, titleCase(summary.Level))
			pdf.Ln(8)
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, summary.Content, "", "L", false)
			pdf.Ln(3)
		}
		pdf.Ln(3)
	}

	if len(questions) > 0 {
		s.writeHeading(pdf, "Questions")
		for i, q := range questions {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, fmt.Sprintf("%d. [%s / %s] %s", i+1, q.Type, q.Difficulty, q.Text), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
			for j, opt := range q.Options {
				marker := " "
				if q.CorrectOptionIndex != nil && *q.CorrectOptionIndex == j {
					marker = "*"
				}
				pdf.MultiCell(0, 6, fmt.Sprintf("   %s %c) %s", marker, 'A'+j, opt), "", "L", false)
			}
			if q.AnswerExplanation != "" {
				pdf.MultiCell(0, 6, "   Answer: "+q.AnswerExplanation, "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(3)
	}

	if len(clarifications) > 0 {
		s.writeHeading(pdf, "Clarifications")
		for _, clar := range clarifications {
			pdf.SetFont("Helvetica", "I", 11)
			pdf.MultiCell(0, 6, fmt.Sprintf("%q", clar.TranscriptSnippet), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, clar.ClarificationText, "", "L", false)
			if clar.Definition != "" {
				pdf.MultiCell(0, 6, "Definition: "+clar.Definition, "", "L", false)
			}
			for _, example := range clar.Examples {
				pdf.MultiCell(0, 6, "- "+example, "", "L", false)
			}
			pdf.Ln(3)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ReportService) writeHeading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, text)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
