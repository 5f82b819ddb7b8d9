package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/tartampluch/go-ctfcal/internal/config"
)

// ErrFileWrite wraps filesystem failures of the calendar write.
var ErrFileWrite = errors.New(config.ErrFileWrite)

// OutputPath returns the calendar file name for the -o flag value.
func OutputPath(base string) string {
	if base == "" {
		return config.DefaultCalendar
	}
	return base + config.CalendarExt
}

// WriteCalendar creates path, or appends to it when it already exists, with a
// single write of data. It reports whether the file was created.
//
// There is no locking: two processes appending to the same file may
// interleave their calendars.
func WriteCalendar(path string, data []byte) (bool, error) {
	_, statErr := os.Stat(path)
	created := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, config.FilePermCalendar)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrFileWrite, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return created, fmt.Errorf("%w: %w", ErrFileWrite, err)
	}

	if err := f.Close(); err != nil {
		return created, fmt.Errorf("%w: %w", ErrFileWrite, err)
	}

	slog.Info(config.MsgCalendarWrite,
		config.LogKeyComponent, config.CompWriter,
		config.LogKeyFile, path,
		config.LogKeyCreated, created,
		config.LogKeySizeBytes, len(data),
	)

	return created, nil
}
