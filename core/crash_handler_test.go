package core

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteCrash(t *testing.T) {
	var buf bytes.Buffer
	writeCrash(&buf, "boom", []byte("goroutine 1 [running]"))

	out := buf.String()
	if !strings.Contains(out, "CRASH DETECTED: boom") {
		t.Errorf("missing panic value in %q", out)
	}
	if !strings.Contains(out, "goroutine 1 [running]") {
		t.Errorf("missing stack in %q", out)
	}
}

func TestHandleCrashNilIsNoOp(t *testing.T) {
	called := false
	SetCrashRestore(func() { called = true })
	defer SetCrashRestore(nil)

	HandleCrash(nil)
	if called {
		t.Error("restore ran for a nil panic value")
	}
}

func TestGoRunsFunction(t *testing.T) {
	done := make(chan struct{})
	Go(func() { close(done) })
	<-done
}
