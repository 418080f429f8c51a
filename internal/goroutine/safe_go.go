package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/lenstube-reports/internal/logger"
)

// PanicHandler получает значение паники и стек упавшей горутины.
type PanicHandler func(recovered any, stack []byte)

// OnPanic вызывается для каждой пойманной паники. По умолчанию пишет в лог.
var OnPanic PanicHandler = logPanic

func logPanic(recovered any, stack []byte) {
	logger.WithFields(logrus.Fields{
		"panic": recovered,
		"stack": string(stack),
	}).Error("goroutine: panic")
}

// SafeGo запускает горутину; паника не роняет процесс.
func SafeGo(fn func()) {
	go func() {
		defer recoverPanic()
		fn()
	}()
}

// SafeGoWithContext то же, что SafeGo, но передаёт ctx в fn.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer recoverPanic()
		fn(ctx)
	}()
}

func recoverPanic() {
	if r := recover(); r != nil {
		OnPanic(r, debug.Stack())
	}
}
