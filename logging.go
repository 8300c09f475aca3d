// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

import (
	"log/slog"

	"github.com/joeycumines/logiface"
	islog "github.com/joeycumines/logiface-slog"
)

// Logger is the diagnostic sink consulted on the channel's cold paths. It is
// never called from increment/decrement/push/pop. A nil Logger (the default
// returned by defaultConfig) is a valid, no-op value.
type Logger interface {
	Warn(msg string, kv ...any)
}

// NewSlogLogger adapts an slog.Handler into a Logger, via logiface and
// logiface-slog. Fields are attached to the event as alternating key/value
// pairs; a key with no matching value is dropped.
func NewSlogLogger(handler slog.Handler) Logger {
	return &slogLogger{
		logger: logiface.New[*islog.Event](islog.NewLogger(handler)),
	}
}

type slogLogger struct {
	logger *logiface.Logger[*islog.Event]
}

func (l *slogLogger) Warn(msg string, kv ...any) {
	b := l.logger.Warning()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		b = b.Any(key, kv[i+1])
	}
	b.Log(msg)
}
