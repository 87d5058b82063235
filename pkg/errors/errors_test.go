package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewAndIs(t *testing.T) {
	err := New(ErrCodeInvalidSlide, "bad slide %q", "s1")

	if !Is(err, ErrCodeInvalidSlide) {
		t.Error("Is should match the assigned code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match other codes")
	}
	if GetCode(err) != ErrCodeInvalidSlide {
		t.Errorf("GetCode = %s", GetCode(err))
	}
	if !strings.Contains(err.Error(), "INVALID_SLIDE") || !strings.Contains(err.Error(), `"s1"`) {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodePipelineFailure, cause, "layout for %s", "s1")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if !Is(err, ErrCodePipelineFailure) {
		t.Error("wrapped error should carry its code")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("cause missing from message: %s", err.Error())
	}
}

func TestIsUnwrapsChains(t *testing.T) {
	inner := New(ErrCodeInvalidConfig, "bad gutter")
	outer := fmt.Errorf("while validating: %w", inner)

	if !Is(outer, ErrCodeInvalidConfig) {
		t.Error("Is should find codes through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeInvalidConfig {
		t.Errorf("GetCode through chain = %s", GetCode(outer))
	}
}

func TestGetCodePlainError(t *testing.T) {
	if GetCode(stderrors.New("plain")) != "" {
		t.Error("plain errors have no code")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "slide has no containers")
	if UserMessage(err) != "slide has no containers" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
	plain := stderrors.New("boom")
	if UserMessage(plain) != "boom" {
		t.Errorf("UserMessage for plain error = %q", UserMessage(plain))
	}
}
