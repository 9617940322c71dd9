package notifier

import (
	"context"
	"errors"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// Sender получатель событий аллокаций
type Sender interface {
	Notify(ctx context.Context, event domain.AllocationEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Log пишет события в лог, используется когда брокер не настроен
type Log struct {
	log Logger
}

func NewLog(log Logger) *Log {
	return &Log{log: log}
}

func (n *Log) Notify(_ context.Context, event domain.AllocationEvent) error {
	msg := NewMessage(event)
	n.log.Info("Event %s: allocation id=%d, resource=%d (%s), %s %s-%s, status=%s, version=%d",
		msg.Type, msg.Allocation.ID, msg.ResourceID, msg.ResourceKind,
		msg.Allocation.Date, msg.Allocation.StartTime, msg.Allocation.EndTime,
		msg.Allocation.Status, msg.Allocation.Version)
	return nil
}

// Noop игнорирует события
type Noop struct{}

func (Noop) Notify(context.Context, domain.AllocationEvent) error {
	return nil
}

// Multi рассылает событие всем получателям
// Ошибка одного получателя не мешает доставке остальным
type Multi struct {
	senders []Sender
}

func NewMulti(senders ...Sender) *Multi {
	return &Multi{senders: senders}
}

func (m *Multi) Notify(ctx context.Context, event domain.AllocationEvent) error {
	var errs []error
	for _, s := range m.senders {
		if err := s.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
