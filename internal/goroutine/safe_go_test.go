package goroutine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func capturePanics(t *testing.T) <-chan any {
	t.Helper()
	caught := make(chan any, 1)
	prev := OnPanic
	OnPanic = func(recovered any, stack []byte) {
		assert.NotEmpty(t, stack)
		caught <- recovered
	}
	t.Cleanup(func() { OnPanic = prev })
	return caught
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	caught := capturePanics(t)

	SafeGo(func() { panic("boom") })

	select {
	case r := <-caught:
		assert.Equal(t, "boom", r)
	case <-time.After(time.Second):
		t.Fatal("паника не перехвачена")
	}
}

func TestSafeGoWithContext_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	got := make(chan any, 1)

	SafeGoWithContext(ctx, func(ctx context.Context) { got <- ctx.Value(key{}) })

	select {
	case v := <-got:
		assert.Equal(t, "v", v)
	case <-time.After(time.Second):
		t.Fatal("функция не запущена")
	}
}
