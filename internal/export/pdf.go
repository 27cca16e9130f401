package export

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/domain"
)

// WriteUsersPDF renders users as a paginated document at path, one
// pipe-delimited line per user, overwriting any previous file.
func WriteUsersPDF(users []domain.User, path string) error {
	lines := make([]string, 0, len(users))
	for _, u := range users {
		cells := userCells(u)
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fmt.Sprint(c)
		}
		lines = append(lines, strings.Join(parts, " | "))
	}

	return writeDocument("Users list", lines, path)
}

// WriteRatingsPDF renders the leaderboard projection as a document at path.
func WriteRatingsPDF(ratings []RatingRow, path string) error {
	lines := make([]string, 0, len(ratings))
	for _, r := range ratings {
		lines = append(lines, fmt.Sprintf("%d | %d | %s | %s | %s | %d | %d | %d",
			r.Rank, r.ID, r.Handle, r.DisplayName, r.ContentLink, r.Likes, r.Views, r.Rating))
	}

	return writeDocument("Rating list", lines, path)
}

func writeDocument(title string, lines []string, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)

	// The core fonts are cp1252, so text must be transcoded from UTF-8
	// before it is written; anything outside the codepage is replaced.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.CellFormat(0, 8, tr(title), "", 1, "", false, 0, "")
	pdf.Ln(2)

	for _, line := range lines {
		pdf.MultiCell(0, 6, tr(line), "", "", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	return nil
}
