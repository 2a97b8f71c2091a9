package apperr

import (
	"errors"
	"fmt"
	"testing"
)

var (
	errBase = &Error{Message: "export failed for %s"}
	errIO   = errors.New("disk full")
)

func TestFmtMatchesSentinel(t *testing.T) {
	err := errBase.Fmt("trip")

	if err.Error() != "export failed for trip" {
		t.Fatalf("unexpected message: %s", err.Error())
	}

	if !errors.Is(err, errBase) {
		t.Fatal("formatted error should match its sentinel")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := fmt.Errorf("stop: %w", errBase.Fmt("trip").Wrap(errIO))

	if !errors.Is(err, errBase) {
		t.Fatal("wrapped error should match its sentinel")
	}

	if !errors.Is(err, errIO) {
		t.Fatal("wrapped error should match its cause")
	}
}

func TestDerive(t *testing.T) {
	child := errBase.Derive("child")

	if !errors.Is(child, errBase) {
		t.Fatal("derived error should match parent")
	}

	if errors.Is(errBase, child) {
		t.Fatal("parent should not match derived error")
	}
}

func TestDerivedSentinelSurvivesFmt(t *testing.T) {
	child := errBase.Derive("child %d")
	err := child.Fmt(1).Wrap(errIO)

	if !errors.Is(err, child) || !errors.Is(err, errBase) {
		t.Fatal("formatted derived error should match the whole chain")
	}
}
