// Package activity records state-changing operations as timestamped text lines.
package activity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/google/uuid"
)

const (
	LevelInfo    = "INFO"
	LevelSuccess = "SUCCESS"
	LevelFailed  = "FAILED"
	LevelCreate  = "CREATE"
	LevelUpdate  = "UPDATE"
	LevelDelete  = "DELETE"
	LevelError   = "ERROR"
)

// TimeLayout is the timestamp format of a log line.
const TimeLayout = "2006-01-02 15:04:05"

// Log is an append-only activity sink.
type Log interface {
	Append(ctx context.Context, message, actor, level string) error
}

type Entry struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Actor   string    `json:"actor"`
	Message string    `json:"message"`
}

func NewEntry(message, actor, level string, at time.Time) Entry {
	if actor == "" {
		actor = "System"
	}
	if level == "" {
		level = LevelInfo
	}
	return Entry{
		ID:      uuid.NewString(),
		Time:    at,
		Level:   level,
		Actor:   actor,
		Message: message,
	}
}

// Line renders the entry as "[time] [LEVEL] [actor] message".
func (e Entry) Line() string {
	return fmt.Sprintf("[%s] [%s] [%s] %s", e.Time.Format(TimeLayout), e.Level, e.Actor, e.Message)
}

// Record appends to l. A failing sink is reported to the process log only.
func Record(ctx context.Context, l Log, actor, level, message string) {
	if err := l.Append(ctx, message, actor, level); err != nil {
		log.Printf("WARNING: failed to write activity entry: %v", err)
	}
}

// RecordError appends an ERROR entry for failures that are not domain errors,
// such as a store that cannot be read or written.
func RecordError(ctx context.Context, l Log, actor string, op string, err error) {
	if domain.Kind(err) != domain.CodeInternal {
		return
	}
	Record(ctx, l, actor, LevelError, fmt.Sprintf("%s failed: %v", op, err))
}

// Multi appends to every sink and joins their errors.
type Multi []Log

func (m Multi) Append(ctx context.Context, message, actor, level string) error {
	var errs []error
	for _, l := range m {
		if err := l.Append(ctx, message, actor, level); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type discard struct{}

func (discard) Append(context.Context, string, string, string) error { return nil }

// Discard drops every entry.
var Discard Log = discard{}
