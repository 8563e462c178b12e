package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	InputDir   string
	InputFiles []string // файлы в порядке объединения
	OutputPath string
}

// ParseFlags разбирает аргументы командной строки.
// Исходные файлы передаются позиционно; файлы из -dir добавляются после них.
func ParseFlags(args []string) (*Config, error) {

	cfg := &Config{}

	fs := flag.NewFlagSet("excel-merger", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.InputDir, "dir", "", "папка с исходными XLSX файлами")
	fs.StringVar(&cfg.OutputPath, "out", "./merged.xlsx", "результирующий файл")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Нормализация путей. Пустой -out оставляем как есть: Clean превратил бы его в "."
	if strings.TrimSpace(cfg.OutputPath) != "" {
		cfg.OutputPath = filepath.Clean(cfg.OutputPath)
	}
	for _, path := range fs.Args() {
		cfg.InputFiles = append(cfg.InputFiles, filepath.Clean(path))
	}

	if cfg.InputDir != "" {
		cfg.InputDir = filepath.Clean(cfg.InputDir)
		files, err := listInputFiles(cfg.InputDir, cfg.OutputPath)
		if err != nil {
			return nil, err
		}
		cfg.InputFiles = append(cfg.InputFiles, files...)
	}

	return cfg, nil
}

// listInputFiles собирает .xlsx файлы папки в лексическом порядке.
// Временные файлы Excel (~$*) и сам результирующий файл пропускаются.
func listInputFiles(dir, outputPath string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("папка с файлами недоступна: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s не является папкой", dir)
	}

	outAbs, _ := filepath.Abs(outputPath)

	inputFiles := []string{}
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xlsx") {
			return nil
		}
		if strings.HasPrefix(info.Name(), "~$") {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == outAbs {
			return nil
		}
		inputFiles = append(inputFiles, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при обходе папки: %w", err)
	}

	return inputFiles, nil
}
