package merger

import (
	"log/slog"
	"strings"
	"time"

	"github.com/ryabkov82/excel-merger/internal/table"
)

type FileMerger interface {
	MergeFiles(inputs []string, output string) (*Result, error)
}

// Result описывает успешное объединение
type Result struct {
	OutputFile string
	RowCount   int
	Files      int      // сколько файлов дали данные
	Skipped    []string // файлы с пустым первым листом
}

// Merger объединяет первые листы книг в одну таблицу, удаляя пустые строки
type Merger struct {
	logger *slog.Logger

	// подменяются в тестах
	extract func(path string) (*table.Table, error)
	write   func(t *table.Table, path string) error
}

func New(logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{logger: logger, extract: Extract, write: Write}
}

// MergeFiles читает файлы по порядку и сохраняет объединенную таблицу в output.
// Файл записывается только после того, как прочитаны все исходные файлы.
func (m *Merger) MergeFiles(inputs []string, output string) (*Result, error) {
	if len(inputs) == 0 {
		return nil, &UsageError{Err: ErrNoInputs}
	}
	if strings.TrimSpace(output) == "" {
		return nil, &UsageError{Err: ErrNoOutput}
	}

	start := time.Now()
	var filtered []*table.Table
	res := &Result{OutputFile: output}

	for _, path := range inputs {
		t, err := m.extract(path)
		if err != nil {
			m.logger.Error("merge.read.failed", "path", path, "error", err)
			return nil, err
		}
		if t == nil {
			m.logger.Warn("merge.sheet.empty", "path", path)
			res.Skipped = append(res.Skipped, path)
			continue
		}

		kept := table.Filter(t)
		filtered = append(filtered, kept)
		res.Files++

		m.logger.Debug("merge.file.ok",
			"path", path,
			"rows", t.Len(),
			"kept", kept.Len(),
		)
	}

	merged := table.Merge(filtered...)

	if err := m.write(merged, output); err != nil {
		m.logger.Error("merge.write.failed", "path", output, "error", err)
		return nil, err
	}
	res.RowCount = merged.Len()

	m.logger.Info("merge.ok",
		"output", output,
		"files", res.Files,
		"skipped", len(res.Skipped),
		"rows", res.RowCount,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
