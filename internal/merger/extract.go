package merger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ryabkov82/excel-merger/internal/table"
	"github.com/xuri/excelize/v2"
)

// Extract читает первый лист книги и возвращает его используемый диапазон в виде таблицы.
// Первая строка диапазона — заголовок, остальные — данные.
// Для пустого листа возвращает (nil, nil): такой файл пропускается без ошибки.
func Extract(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &UnreadableFileError{Path: path, Err: err}
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, nil
	}
	sheet := sheetList[0]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &UnreadableFileError{Path: path, Err: fmt.Errorf("ошибка чтения строк листа %q: %w", sheet, err)}
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	rng, ok := usedRange(raw)
	if !ok {
		return nil, nil
	}

	rows := make([][]table.Value, 0, rng.lastRow-rng.firstRow+1)
	for r := rng.firstRow; r <= rng.lastRow; r++ {
		row := make([]table.Value, rng.lastCol-rng.firstCol+1)
		for c := rng.firstCol; c <= rng.lastCol; c++ {
			rawVal := cellAt(raw, r, c)
			if rawVal == "" {
				continue
			}
			row[c-rng.firstCol] = cellValue(f, sheet, c+1, r+1, rawVal, date1904)
		}
		rows = append(rows, row)
	}

	return &table.Table{Header: rows[0], Rows: rows[1:]}, nil
}

// cellRange — индексы с нуля, границы включительно
type cellRange struct {
	firstRow, lastRow int
	firstCol, lastCol int
}

// usedRange находит минимальный прямоугольник, содержащий все непустые ячейки.
// Ячейка из одних пробелов тоже считается занятой.
func usedRange(rows [][]string) (cellRange, bool) {
	rng := cellRange{firstRow: -1, firstCol: -1, lastRow: -1, lastCol: -1}
	for r, cells := range rows {
		for c, v := range cells {
			if v == "" {
				continue
			}
			if rng.firstRow == -1 {
				rng.firstRow = r
			}
			rng.lastRow = r
			if rng.firstCol == -1 || c < rng.firstCol {
				rng.firstCol = c
			}
			if c > rng.lastCol {
				rng.lastCol = c
			}
		}
	}
	return rng, rng.firstRow != -1
}

func cellAt(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}

// cellValue приводит значение к типу, который хранит сама ячейка.
// Числа с форматом даты возвращаются как time.Time.
func cellValue(f *excelize.File, sheet string, col, row int, rawVal string, date1904 bool) table.Value {
	cellRef, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return rawVal
	}
	valType, err := f.GetCellType(sheet, cellRef)
	if err != nil {
		return rawVal
	}

	switch valType {
	case excelize.CellTypeBool:
		return rawVal == "1" || strings.EqualFold(rawVal, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, err := strconv.ParseFloat(rawVal, 64)
		if err != nil {
			return rawVal
		}
		if isDateCell(f, sheet, cellRef) {
			if tm, err := excelize.ExcelDateToTime(n, date1904); err == nil {
				return tm
			}
		}
		return n
	case excelize.CellTypeDate:
		// ISO 8601 в атрибуте t="d"
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if tm, err := time.Parse(layout, rawVal); err == nil {
				return tm
			}
		}
		return rawVal
	default:
		return rawVal
	}
}

func isDateCell(f *excelize.File, sheet, cellRef string) bool {
	styleID, err := f.GetCellStyle(sheet, cellRef)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateLayout(*style.CustomNumFmt)
	}
	return isDateFormat(style.NumFmt)
}

func isDateFormat(fmtID int) bool {
	switch fmtID {
	case 14, 15, 16, 17, 18, 19, 20, 21, 22, 27, 30, 36, 45, 46, 47:
		return true
	}
	return false
}

func isDateLayout(layout string) bool {
	layout = strings.ToLower(layout)
	for _, token := range []string{"yy", "dd", "mmm", "h:"} {
		if strings.Contains(layout, token) {
			return true
		}
	}
	return false
}
