package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ryabkov82/excel-merger/internal/config"
	"github.com/ryabkov82/excel-merger/internal/merger"
)

type Output struct {
	Success    bool     `json:"success"`
	OutputFile string   `json:"output_file,omitempty"`
	RowCount   int      `json:"row_count"`
	Skipped    []string `json:"skipped,omitempty"`
	Error      string   `json:"error,omitempty"`
	ErrorPath  string   `json:"error_path,omitempty"`
	Duration   string   `json:"duration"`
}

func main() {

	start := time.Now()

	// stdout занят JSON-результатом, логи идут в stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		emitJSON(Output{
			Success:  false,
			Error:    fmt.Sprintf("Ошибка конфигурации: %v", err),
			Duration: time.Since(start).String(),
		})
		os.Exit(1)
	}

	var m merger.FileMerger = merger.New(logger)
	res, err := m.MergeFiles(cfg.InputFiles, cfg.OutputPath)
	if err != nil {
		msg, path := merger.Describe(err)
		emitJSON(Output{
			Success:   false,
			Error:     fmt.Sprintf("Ошибка объединения: %s", msg),
			ErrorPath: path,
			Duration:  time.Since(start).String(),
		})
		os.Exit(1)
	}

	emitJSON(Output{
		Success:    true,
		OutputFile: res.OutputFile,
		RowCount:   res.RowCount,
		Skipped:    res.Skipped,
		Duration:   time.Since(start).String(),
	})

}

func emitJSON(out Output) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Ошибка вывода JSON: %v", err)
	}
}
