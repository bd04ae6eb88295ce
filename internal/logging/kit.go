package logging

import (
	"context"
	"fmt"
	"log/slog"

	kitlog "github.com/go-kit/kit/log"
)

type kitLogger struct {
	logger *slog.Logger
	msg    string
}

// NewKitLogger returns a go-kit log.Logger that writes through logger, so
// go-kit middleware and transports share the process log format.
//
// Each Log call becomes one record with message msg, unless the keyvals
// carry a "msg" key. A "level" key sets the record level, and a non-nil
// error under "err" raises it to at least warn.
func NewKitLogger(logger *slog.Logger, msg string) kitlog.Logger {
	return kitLogger{logger: logger, msg: msg}
}

func (k kitLogger) Log(keyvals ...interface{}) error {
	level, msg := slog.LevelInfo, k.msg
	attrs := make([]slog.Attr, 0, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		var val interface{} = kitlog.ErrMissingValue
		if i+1 < len(keyvals) {
			val = keyvals[i+1]
		}

		switch key {
		case "msg":
			msg = fmt.Sprint(val)
			continue
		case "level":
			level = parseLevel(fmt.Sprint(val))
			continue
		}
		if err, ok := val.(error); ok && err != nil {
			if key == "err" && level < slog.LevelWarn {
				level = slog.LevelWarn
			}
			val = err.Error()
		}
		attrs = append(attrs, slog.Any(key, val))
	}
	k.logger.LogAttrs(context.Background(), level, msg, attrs...)
	return nil
}
