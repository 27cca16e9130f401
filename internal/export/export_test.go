package export

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/domain"
)

func sampleUsers() []domain.User {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.User{
		{
			ID:          101,
			Handle:      "alice",
			DisplayName: "Alice A",
			ContentLink: "https://instagram.com/reel/abc123",
			RealName:    "Alice",
			Phone:       "+998901112233",
			Likes:       10,
			Views:       90,
			Rating:      100,
			CreatedAt:   created,
			LastActive:  sql.NullTime{Time: created, Valid: true},
		},
		{
			ID:          102,
			Handle:      "bob",
			DisplayName: "Bob B",
			Likes:       5,
			Views:       5,
			Rating:      10,
			CreatedAt:   created.Add(time.Hour),
		},
	}
}

func TestWriteUsersXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.xlsx")
	require.NoError(t, WriteUsersXLSX(sampleUsers(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("users")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two users

	require.Equal(t, UsersHeader, rows[0])
	require.Equal(t, "101", rows[1][0])
	require.Equal(t, "alice", rows[1][1])
	require.Equal(t, "100", rows[1][8])
	require.Equal(t, "102", rows[2][0])
}

func TestWriteUsersPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.pdf")
	require.NoError(t, WriteUsersPDF(sampleUsers(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestWriteRatingsXLSXOrdersByRating(t *testing.T) {
	rows := BuildRatingRows(sampleUsers())
	require.Len(t, rows, 2)
	require.Equal(t, 1, rows[0].Rank)
	require.Equal(t, int64(101), rows[0].ID) // rating 100 outranks 10
	require.Equal(t, 2, rows[1].Rank)
	require.Equal(t, int64(102), rows[1].ID)

	path := filepath.Join(t.TempDir(), "ratings.xlsx")
	require.NoError(t, WriteRatingsXLSX(rows, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("ratings")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, RatingsHeader, got[0])
}

func TestWriteRatingsPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.pdf")
	require.NoError(t, WriteRatingsPDF(BuildRatingRows(sampleUsers()), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestDocumentTextTranscoding(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	require.Equal(t, "plain", tr("plain"))
	// cp1252 runes become single codepage bytes, anything else is replaced.
	require.Equal(t, "caf\xe9", tr("café"))
	require.Equal(t, "salom . dunyo", tr("salom 😀 dunyo"))
}
