// Package export renders user rows into spreadsheet, document, and chunked
// text forms for the admin surface.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/domain"
)

// UsersHeader is the fixed column order of the users spreadsheet.
var UsersHeader = []string{
	"id", "handle", "display_name", "content_link", "real_name", "phone",
	"likes", "views", "rating", "created_at",
}

// RatingsHeader is the fixed column order of the leaderboard spreadsheet.
var RatingsHeader = []string{
	"rank", "id", "handle", "display_name", "content_link", "likes", "views", "rating",
}

// RatingRow is the leaderboard projection of a user.
type RatingRow struct {
	Rank        int
	ID          int64
	Handle      string
	DisplayName string
	ContentLink string
	Likes       int64
	Views       int64
	Rating      int64
}

// BuildRatingRows projects users onto the leaderboard shape, ordered by
// rating descending. Ties keep registration order.
func BuildRatingRows(users []domain.User) []RatingRow {
	sorted := make([]domain.User, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	rows := make([]RatingRow, len(sorted))
	for i, u := range sorted {
		rows[i] = RatingRow{
			Rank:        i + 1,
			ID:          u.ID,
			Handle:      u.Handle,
			DisplayName: u.DisplayName,
			ContentLink: u.ContentLink,
			Likes:       u.Likes,
			Views:       u.Views,
			Rating:      u.Rating,
		}
	}

	return rows
}

// WriteUsersXLSX renders users into a single-sheet spreadsheet at path,
// overwriting any previous file.
func WriteUsersXLSX(users []domain.User, path string) error {
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, userCells(u))
	}

	return writeSheet("users", UsersHeader, rows, path)
}

// WriteRatingsXLSX renders the leaderboard projection at path.
func WriteRatingsXLSX(ratings []RatingRow, path string) error {
	rows := make([][]any, 0, len(ratings))
	for _, r := range ratings {
		rows = append(rows, []any{r.Rank, r.ID, r.Handle, r.DisplayName, r.ContentLink, r.Likes, r.Views, r.Rating})
	}

	return writeSheet("ratings", RatingsHeader, rows, path)
}

func writeSheet(sheet string, header []string, rows [][]any, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save spreadsheet: %w", err)
	}

	return nil
}

func userCells(u domain.User) []any {
	return []any{
		u.ID, u.Handle, u.DisplayName, u.ContentLink, u.RealName, u.Phone,
		u.Likes, u.Views, u.Rating, u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
