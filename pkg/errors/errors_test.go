package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPattern, "invalid glob %q", "[a")

	if err.Code != ErrCodeInvalidPattern {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidPattern)
	}
	if want := `INVALID_PATTERN: invalid glob "[a"`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeDatabase, fs.ErrNotExist, "cannot read local database %s", "/var/lib/pacman/local")

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
	want := "DATABASE_ERROR: cannot read local database /var/lib/pacman/local: file does not exist"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	nested := Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidInput, `invalid sort order "by-mood"`), "cannot parse config.toml")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidPattern, "x"), ErrCodeInvalidPattern, true},
		{"other code", New(ErrCodeInvalidPattern, "x"), ErrCodeDatabase, false},
		{"outer of nested", nested, ErrCodeInvalidConfig, true},
		{"inner of nested", nested, ErrCodeInvalidInput, true},
		{"behind fmt wrap", fmt.Errorf("write report: %w", New(ErrCodeInternal, "x")), ErrCodeInternal, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(ErrCodeDatabase, "x"), ErrCodeDatabase},
		{"outermost wins", Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidInput, "x"), "y"), ErrCodeInvalidConfig},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no cause", New(ErrCodeInvalidPattern, `invalid regex "("`), `invalid regex "("`},
		{"with cause", Wrap(ErrCodeDatabase, errors.New("permission denied"), "read /var/lib/pacman/local"), "read /var/lib/pacman/local: permission denied"},
		{"plain", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	epipe := &os.PathError{Op: "write", Path: "/dev/stdout", Err: syscall.EPIPE}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"broken pipe", fmt.Errorf("write report: %w", epipe), ExitOK},
		{"interrupted", context.Canceled, ExitInterrupted},
		{"interrupted mid closure", fmt.Errorf("closure: %w", context.Canceled), ExitInterrupted},
		{"fatal", New(ErrCodeDatabase, "x"), ExitFailure},
		{"plain", errors.New("boom"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
