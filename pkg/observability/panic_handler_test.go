package observability

import (
	"bytes"
	"strings"
	"testing"
)

func TestRecoverPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(ErrorLevel, &buf)

	func() {
		defer RecoverPanic(logger, "test goroutine")
		panic("something broke")
	}()

	entry := decodeEntry(t, &buf)
	if entry["msg"] != "PANIC recovered" {
		t.Errorf("Expected recovery message, got %v", entry["msg"])
	}
	if entry["panic"] != "something broke" {
		t.Errorf("Expected panic value in entry, got %v", entry["panic"])
	}
	if entry["context"] != "test goroutine" {
		t.Errorf("Expected context in entry, got %v", entry["context"])
	}
	stack, _ := entry["stack"].(string)
	if stack == "" {
		t.Error("Expected stack trace in entry")
	}
}

func TestRecoverPanicNoPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(ErrorLevel, &buf)

	func() {
		defer RecoverPanic(logger, "calm goroutine")
	}()

	if buf.Len() != 0 {
		t.Errorf("Expected no log output without a panic, got %s", buf.String())
	}
}

func TestMustRecover(t *testing.T) {
	err := func() (err error) {
		defer func() {
			err = MustRecover(recover())
		}()
		panic("boom")
	}()

	if err == nil {
		t.Fatal("Expected error from recovered panic")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Expected panic value in error, got %v", err)
	}
}

func TestMustRecoverNil(t *testing.T) {
	if err := MustRecover(nil); err != nil {
		t.Errorf("Expected nil error without a panic, got %v", err)
	}
}
