package merger

import (
	"errors"
	"fmt"
)

var (
	ErrNoInputs = errors.New("не выбраны исходные файлы")
	ErrNoOutput = errors.New("не указан путь для сохранения")
)

// UsageError — неверный вызов, обнаруживается до любого обращения к файлам
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("ошибка использования: %v", e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// UnreadableFileError — исходный файл не удалось прочитать как книгу Excel
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("не удалось прочитать файл %s: %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}

// WriteError — результат не удалось сохранить
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("не удалось сохранить файл %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Describe превращает ошибку в сообщение для пользователя и путь к файлу, если он известен
func Describe(err error) (string, string) {
	if err == nil {
		return "", ""
	}

	var (
		usageErr *UsageError
		readErr  *UnreadableFileError
		writeErr *WriteError
	)
	switch {
	case errors.As(err, &usageErr):
		return usageErr.Err.Error(), ""
	case errors.As(err, &readErr):
		return readErr.Error(), readErr.Path
	case errors.As(err, &writeErr):
		return writeErr.Error(), writeErr.Path
	default:
		return err.Error(), ""
	}
}
