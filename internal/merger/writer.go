package merger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ryabkov82/excel-merger/internal/table"
	"github.com/xuri/excelize/v2"
)

// OutputSheet — имя единственного листа результирующей книги
const OutputSheet = "merged"

const (
	minColWidth = 8
	maxColWidth = 60
	tableStyle  = "TableStyleMedium2"
)

// Write сохраняет таблицу в новую книгу: заголовок в первой строке, данные ниже.
// Книга сначала пишется во временный файл рядом с целевым и затем переименовывается,
// так что при ошибке существующий файл не повреждается.
func Write(t *table.Table, path string) error {
	if err := write(t, path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func write(t *table.Table, path string) error {
	if t == nil {
		t = &table.Table{}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), OutputSheet); err != nil {
		return fmt.Errorf("ошибка переименования листа: %v", err)
	}

	sw, err := f.NewStreamWriter(OutputSheet)
	if err != nil {
		return fmt.Errorf("ошибка создания StreamWriter: %v", err)
	}

	// ширину колонок можно задать только до первой строки
	for i, width := range columnWidths(t) {
		if err := sw.SetColWidth(i+1, i+1, float64(width)); err != nil {
			return fmt.Errorf("ошибка установки ширины колонки %d: %v", i+1, err)
		}
	}

	rowCounter := 1
	if !t.IsEmpty() {
		headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("ошибка создания стиля заголовка: %v", err)
		}
		headerRow := make([]interface{}, len(t.Header))
		for i, h := range t.Header {
			headerRow[i] = excelize.Cell{Value: h, StyleID: headerStyle}
		}
		if err := sw.SetRow("A1", headerRow); err != nil {
			return fmt.Errorf("ошибка записи заголовков: %v", err)
		}
		rowCounter++
	}

	dateStyles := make(map[int]int)
	for _, row := range t.Rows {
		rowData := make([]interface{}, len(row))
		for i, v := range row {
			if v == nil {
				continue
			}
			cell := excelize.Cell{Value: v}
			if tm, ok := v.(time.Time); ok {
				numFmt := dateNumFmt(tm)
				styleID, ok := dateStyles[numFmt]
				if !ok {
					if styleID, err = f.NewStyle(&excelize.Style{NumFmt: numFmt}); err != nil {
						return fmt.Errorf("ошибка создания стиля даты: %v", err)
					}
					dateStyles[numFmt] = styleID
				}
				cell.StyleID = styleID
			}
			rowData[i] = cell
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowCounter)
		if err := sw.SetRow(cell, rowData); err != nil {
			return fmt.Errorf("ошибка записи строки %d: %v", rowCounter, err)
		}
		rowCounter++
	}

	if canAddTable(t) {
		end, _ := excelize.CoordinatesToCellName(t.Width(), t.Len()+1)
		if err := sw.AddTable(&excelize.Table{
			Range:     "A1:" + end,
			Name:      "Merged",
			StyleName: tableStyle,
		}); err != nil {
			return fmt.Errorf("ошибка создания таблицы: %v", err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("ошибка финального flush: %v", err)
	}

	return saveAtomic(f, path)
}

func saveAtomic(f *excelize.File, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".excel-merger-*.xlsx")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("ошибка установки прав файла: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("ошибка переименования временного файла: %w", err)
	}
	return nil
}

// canAddTable: таблица Excel требует непустых уникальных заголовков
// и не допускает ячеек правее последней колонки.
func canAddTable(t *table.Table) bool {
	if t.IsEmpty() || t.Len() == 0 {
		return false
	}
	seen := make(map[string]struct{}, t.Width())
	for _, h := range t.Header {
		if table.IsBlank(h) {
			return false
		}
		name := strings.ToLower(render(h))
		if _, ok := seen[name]; ok {
			return false
		}
		seen[name] = struct{}{}
	}
	for _, row := range t.Rows {
		if len(row) > t.Width() {
			return false
		}
	}
	return true
}

// columnWidths оценивает ширину колонок по самому длинному значению
func columnWidths(t *table.Table) []int {
	var maxColWidths []int
	measure := func(row []table.Value) {
		for len(maxColWidths) < len(row) {
			maxColWidths = append(maxColWidths, minColWidth)
		}
		for i, v := range row {
			if n := utf8.RuneCountInString(render(v)) + 2; n > maxColWidths[i] {
				maxColWidths[i] = min(n, maxColWidth)
			}
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}
	return maxColWidths
}

// dateNumFmt выбирает встроенный формат: время, дата или дата со временем
func dateNumFmt(tm time.Time) int {
	switch {
	case tm.Year() < 1900:
		return 21 // h:mm:ss
	case tm.Hour() == 0 && tm.Minute() == 0 && tm.Second() == 0:
		return 14 // m/d/yy
	default:
		return 22 // m/d/yy h:mm
	}
}

func render(v table.Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(val)
	}
}
