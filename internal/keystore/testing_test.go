package keystore

import (
	"io"

	logger "github.com/devforge/devforge/internal/logging"
)

func loggerForTest() logger.Logger {
	return logger.Logger{Verbose: true, Out: io.Discard, Err: io.Discard}
}
