package merger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/excel-merger/internal/table"
)

func TestExtract_HeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "a.xlsx", [][]interface{}{
		{"id", "name", "active"},
		{1, "  alice ", true},
		{2.5, "007", false},
	})

	got, err := Extract(path)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, []table.Value{"id", "name", "active"}, got.Header)
	assert.Equal(t, [][]table.Value{
		{float64(1), "  alice ", true},
		{2.5, "007", false},
	}, got.Rows)
}

func TestExtract_UsedRangeOffset(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "C3", "x"))
	require.NoError(t, f.SetCellValue("Sheet1", "D3", "y"))
	require.NoError(t, f.SetCellValue("Sheet1", "C4", "1"))
	require.NoError(t, f.SetCellValue("Sheet1", "D6", "2"))
	path := filepath.Join(dir, "offset.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := Extract(path)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, []table.Value{"x", "y"}, got.Header)
	assert.Equal(t, [][]table.Value{
		{"1", nil},
		{nil, nil},
		{nil, "2"},
	}, got.Rows)
}

func TestExtract_WhitespaceCellsBelongToUsedRange(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "ws.xlsx", [][]interface{}{
		{"x"},
		{"1"},
		{"  ", " "},
	})

	got, err := Extract(path)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, []table.Value{"x", nil}, got.Header)
	assert.Equal(t, [][]table.Value{
		{"1", nil},
		{"  ", " "},
	}, got.Rows)
}

func TestExtract_DateCellIsTime(t *testing.T) {
	dir := t.TempDir()
	when := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	path := writeWorkbook(t, dir, "date.xlsx", [][]interface{}{
		{"when", "n"},
		{when, 45366},
	})

	got, err := Extract(path)
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)

	tm, ok := got.Rows[0][0].(time.Time)
	require.True(t, ok, "ожидалось time.Time, получено %T", got.Rows[0][0])
	assert.WithinDuration(t, when, tm, time.Second)
	assert.Equal(t, float64(45366), got.Rows[0][1], "число без формата даты остается числом")
}

func TestExtract_EmptySheet(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "empty.xlsx", nil)

	got, err := Extract(path)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestExtract_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCorrupt(t, dir, "bad.xlsx")

	_, err := Extract(path)
	require.Error(t, err)

	var readErr *UnreadableFileError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, path, readErr.Path)
}

func TestExtract_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")

	_, err := Extract(path)

	var readErr *UnreadableFileError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, path, readErr.Path)
}

func TestUsedRange(t *testing.T) {
	_, ok := usedRange([][]string{{}, {"", ""}})
	assert.False(t, ok)

	rng, ok := usedRange([][]string{{}, {"", "a"}, {"b"}, {"", "", "", "c"}})
	require.True(t, ok)
	assert.Equal(t, cellRange{firstRow: 1, lastRow: 3, firstCol: 0, lastCol: 3}, rng)
}
