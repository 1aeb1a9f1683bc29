package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

type testCommand struct {
	Name    string
	invalid bool
}

func (testCommand) Type() string { return "publisher.test.command" }

func (c testCommand) Validate() error {
	if c.invalid {
		return errors.New("name is required")
	}
	return nil
}

type recordLogger struct {
	infoMessages  []string
	errorMessages []string
}

var _ interfaces.Logger = (*recordLogger)(nil)

func (l *recordLogger) Trace(string, ...any) {}
func (l *recordLogger) Debug(string, ...any) {}
func (l *recordLogger) Info(msg string, _ ...any) {
	l.infoMessages = append(l.infoMessages, msg)
}
func (l *recordLogger) Warn(string, ...any) {}
func (l *recordLogger) Error(msg string, _ ...any) {
	l.errorMessages = append(l.errorMessages, msg)
}
func (l *recordLogger) Fatal(string, ...any) {}
func (l *recordLogger) WithContext(context.Context) interfaces.Logger {
	return l
}

func TestHandlerExecutesFunction(t *testing.T) {
	executed := false
	handler := NewHandler(func(ctx context.Context, msg testCommand) error {
		executed = true
		if msg.Name != "sample" {
			t.Errorf("unexpected message payload %q", msg.Name)
		}
		return nil
	})

	if err := handler.Execute(context.Background(), testCommand{Name: "sample"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !executed {
		t.Fatal("expected wrapped function to run")
	}
}

func TestHandlerValidationFailure(t *testing.T) {
	executed := false
	handler := NewHandler(func(context.Context, testCommand) error {
		executed = true
		return nil
	})

	err := handler.Execute(context.Background(), testCommand{invalid: true})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if executed {
		t.Fatal("function should not run on invalid message")
	}
}

func TestHandlerExecuteErrorWrapped(t *testing.T) {
	cause := errors.New("downstream unavailable")
	handler := NewHandler(func(context.Context, testCommand) error {
		return cause
	})

	err := handler.Execute(context.Background(), testCommand{})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause preserved, got %v", err)
	}
}

func TestHandlerTimeout(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, _ testCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
			return nil
		}
	}, WithTimeout[testCommand](10*time.Millisecond))

	err := handler.Execute(context.Background(), testCommand{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestHandlerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	handler := NewHandler(func(context.Context, testCommand) error {
		t.Fatal("function should not run with a cancelled context")
		return nil
	})

	err := handler.Execute(ctx, testCommand{})
	if err == nil {
		t.Fatal("expected context error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHandlerTelemetryCallback(t *testing.T) {
	var gotInfo *TelemetryInfo
	handler := NewHandler(func(context.Context, testCommand) error {
		return nil
	},
		WithOperation[testCommand]("test.run"),
		WithMessageFields(func(msg testCommand) map[string]any {
			return map[string]any{"name": msg.Name}
		}),
		WithTelemetry(func(_ context.Context, _ testCommand, info TelemetryInfo) {
			gotInfo = &info
		}),
	)

	if err := handler.Execute(context.Background(), testCommand{Name: "sample"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotInfo == nil {
		t.Fatal("expected telemetry callback invoked")
	}
	if gotInfo.Status != TelemetryStatusSuccess {
		t.Errorf("unexpected status %q", gotInfo.Status)
	}
	if gotInfo.Command != "publisher.test.command" {
		t.Errorf("unexpected command %q", gotInfo.Command)
	}
	if gotInfo.Operation != "test.run" {
		t.Errorf("unexpected operation %q", gotInfo.Operation)
	}
	if gotInfo.Fields["name"] != "sample" {
		t.Errorf("expected message fields in telemetry, got %v", gotInfo.Fields)
	}
}

func TestHandlerTelemetryReportsFailure(t *testing.T) {
	var gotStatus TelemetryStatus
	handler := NewHandler(func(context.Context, testCommand) error {
		return errors.New("boom")
	}, WithTelemetry(func(_ context.Context, _ testCommand, info TelemetryInfo) {
		gotStatus = info.Status
	}))

	if err := handler.Execute(context.Background(), testCommand{}); err == nil {
		t.Fatal("expected execution error")
	}
	if gotStatus != TelemetryStatusFailed {
		t.Fatalf("expected failed status, got %q", gotStatus)
	}
}

func TestDefaultTelemetryLogsOutcome(t *testing.T) {
	logger := &recordLogger{}
	telemetry := DefaultTelemetry[testCommand](logger)

	telemetry(context.Background(), testCommand{}, TelemetryInfo{Status: TelemetryStatusSuccess})
	telemetry(context.Background(), testCommand{}, TelemetryInfo{Status: TelemetryStatusFailed, Error: errors.New("boom")})

	if len(logger.infoMessages) != 1 || logger.infoMessages[0] != "command.telemetry.success" {
		t.Errorf("unexpected info messages %v", logger.infoMessages)
	}
	if len(logger.errorMessages) != 1 || logger.errorMessages[0] != "command.telemetry.failed" {
		t.Errorf("unexpected error messages %v", logger.errorMessages)
	}
}

func TestCommandLoggerDefaultsModuleName(t *testing.T) {
	if logger := CommandLogger(nil, "  "); logger == nil {
		t.Fatal("expected usable logger for blank module name")
	}
	if logger := CommandLogger(nil, "publish"); logger == nil {
		t.Fatal("expected usable logger for named module")
	}
}
