package table

import "strings"

// Value — значение ячейки: nil (пусто), string, float64 или bool.
type Value = any

type Table struct {
	Header []Value
	Rows   [][]Value
}

// Width возвращает количество колонок схемы
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	return len(t.Header)
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty сообщает, что у таблицы нет ни одной колонки
func (t *Table) IsEmpty() bool {
	return t.Width() == 0
}

// IsBlank: nil или строка только из пробельных символов.
// Числа и логические значения пустыми не считаются.
func IsBlank(v Value) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	default:
		return false
	}
}

// IsBlankRow сообщает, что в строке нет ни одной непустой ячейки
func IsBlankRow(row []Value) bool {
	for _, v := range row {
		if !IsBlank(v) {
			return false
		}
	}
	return true
}

// Filter возвращает новую таблицу с той же схемой и только непустыми строками.
// Порядок строк сохраняется, исходная таблица не меняется.
func Filter(t *Table) *Table {
	out := &Table{}
	if t == nil {
		return out
	}
	out.Header = copyRow(t.Header)
	out.Rows = make([][]Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		if IsBlankRow(row) {
			continue
		}
		out.Rows = append(out.Rows, copyRow(row))
	}
	return out
}

// Append дописывает строки src в конец t.
// Если у t еще нет схемы, она берется из src (при условии, что у src есть колонки).
// Короткие строки дополняются nil до ширины схемы, лишние ячейки сохраняются.
func (t *Table) Append(src *Table) {
	if src == nil {
		return
	}
	if t.IsEmpty() && !src.IsEmpty() {
		t.Header = copyRow(src.Header)
	}
	width := t.Width()
	for _, row := range src.Rows {
		n := len(row)
		if n < width {
			n = width
		}
		dst := make([]Value, n)
		copy(dst, row)
		t.Rows = append(t.Rows, dst)
	}
}

// Merge объединяет таблицы в порядке следования.
// Схема — первой таблицы, у которой есть хотя бы одна колонка.
func Merge(tables ...*Table) *Table {
	merged := &Table{}
	for _, t := range tables {
		merged.Append(t)
	}
	return merged
}

func copyRow(row []Value) []Value {
	if row == nil {
		return nil
	}
	out := make([]Value, len(row))
	copy(out, row)
	return out
}
