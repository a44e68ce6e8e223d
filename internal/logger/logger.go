package logger

import (
	"go.uber.org/zap"
)

// L is the process-wide application logger, set once in main.
var L *zap.Logger = zap.NewNop()

// Init builds the logger. Development mode gets human-readable console
// output; production gets JSON.
func Init(development bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	L = l
	return nil
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	_ = L.Sync()
}
