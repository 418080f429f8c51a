package report

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/ignatzorin/lenstube-reports/internal/goroutine"
	"github.com/ignatzorin/lenstube-reports/internal/models"
)

const (
	SuccessMessage       = "Publication reported successfully."
	FallbackErrorMessage = "Something went wrong"
	TrackReport          = "Report"
)

var (
	ErrSubmitInFlight = errors.New("report is already being submitted")
	ErrDialogClosed   = errors.New("report dialog is closed")
	ErrSubmitPanicked = errors.New("report submit panicked")
)

// Reporter отправляет мутацию жалобы.
type Reporter interface {
	ReportPublication(ctx context.Context, req models.ReportRequest) error
}

// Notifier показывает пользователю всплывающие уведомления.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Tracker отправляет событие аналитики. Результат не используется.
type Tracker interface {
	Track(event string)
}

// State - состояние формы.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// Dependencies - внешние участники формы.
type Dependencies struct {
	Reporter Reporter
	Notifier Notifier
	Tracker  Tracker
	// OnSuccess вызывается один раз после успешной отправки.
	OnSuccess func()
}

// Dialog - форма жалобы на одну публикацию.
type Dialog struct {
	publicationID string
	selector      *Selector
	deps          Dependencies

	mu     sync.Mutex
	state  State
	closed bool
}

// NewDialog открывает форму для публикации.
func NewDialog(publicationID string, deps Dependencies) *Dialog {
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	if deps.Tracker == nil {
		deps.Tracker = nopTracker{}
	}
	return &Dialog{
		publicationID: publicationID,
		selector:      NewSelector(),
		deps:          deps,
	}
}

func (d *Dialog) PublicationID() string { return d.publicationID }

// Select меняет выбранную причину.
func (d *Dialog) Select(id string) error {
	return d.selector.Select(id)
}

// Selected возвращает текущую причину.
func (d *Dialog) Selected() string {
	return d.selector.Current()
}

// State возвращает текущее состояние.
func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Busy - кнопка отправки заблокирована.
func (d *Dialog) Busy() bool {
	return d.State() == StateSubmitting
}

// Close закрывает форму. Результат запроса, пришедший после закрытия,
// игнорируется.
func (d *Dialog) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}

func (d *Dialog) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Submit отправляет жалобу ровно одним вызовом мутации.
// Пока запрос в полёте, повторный вызов возвращает ErrSubmitInFlight и
// ничего не отправляет. Отправленный запрос не отменяется вместе с ctx.
func (d *Dialog) Submit(ctx context.Context) error {
	_, err := d.submit(ctx, "")
	return err
}

// SubmitReason выбирает причину и отправляет жалобу одним шагом: выбор
// меняется только если форма свободна. Возвращает отправленный запрос.
func (d *Dialog) SubmitReason(ctx context.Context, reasonID string) (models.ReportRequest, error) {
	return d.submit(ctx, reasonID)
}

func (d *Dialog) submit(ctx context.Context, reasonID string) (models.ReportRequest, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return models.ReportRequest{}, ErrDialogClosed
	}
	if d.state == StateSubmitting {
		d.mu.Unlock()
		return models.ReportRequest{}, ErrSubmitInFlight
	}
	if reasonID != "" {
		if err := d.selector.Select(reasonID); err != nil {
			d.mu.Unlock()
			return models.ReportRequest{}, err
		}
	}
	d.state = StateSubmitting
	req := d.selector.Request(d.publicationID)
	d.mu.Unlock()

	alive, err := d.send(ctx, req)
	if !alive {
		return req, err
	}

	if err != nil {
		d.deps.Notifier.Error(ErrorMessage(err))
		return req, err
	}

	d.deps.Tracker.Track(TrackReport)
	d.deps.Notifier.Success(SuccessMessage)
	if d.deps.OnSuccess != nil {
		d.deps.OnSuccess()
	}
	return req, nil
}

// send вызывает мутацию и возвращает форму в Idle даже при панике Reporter.
func (d *Dialog) send(ctx context.Context, req models.ReportRequest) (alive bool, err error) {
	defer func() {
		d.mu.Lock()
		d.state = StateIdle
		alive = !d.closed
		d.mu.Unlock()
	}()
	err = d.deps.Reporter.ReportPublication(context.WithoutCancel(ctx), req)
	return alive, err
}

// SubmitAsync запускает Submit в отдельной горутине. Канал получает
// результат и закрывается. Паника внутри Submit приходит как ErrSubmitPanicked.
func (d *Dialog) SubmitAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				goroutine.OnPanic(r, debug.Stack())
				done <- fmt.Errorf("%w: %v", ErrSubmitPanicked, r)
			}
		}()
		done <- d.Submit(ctx)
	})
	return done
}

// ErrorMessage выбирает текст ошибки: сообщение сервера, затем текст
// самой ошибки, затем FallbackErrorMessage.
func ErrorMessage(err error) string {
	var sm interface{ ServerMessage() string }
	if errors.As(err, &sm) {
		if msg := sm.ServerMessage(); msg != "" {
			return msg
		}
	}
	if err != nil {
		if msg := err.Error(); msg != "" {
			return msg
		}
	}
	return FallbackErrorMessage
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

type nopTracker struct{}

func (nopTracker) Track(string) {}
