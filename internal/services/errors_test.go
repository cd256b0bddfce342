package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"moviedb/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrStore, "store", "insert", "write rejected", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrStore) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"store", "insert", "write rejected"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrStore) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "operation failed") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestKindClassification(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrInvalidInput, "lookup", "year", "not numeric", nil), "invalid_input"},
		{services.Wrap(services.ErrRemote, "omdb", "fetch", "", errors.New("timeout")), "remote"},
		{fmt.Errorf("outer: %w", services.ErrNotFound), "not_found"},
		{services.Wrap(services.ErrStore, "store", "query", "", nil), "store"},
		{errors.New("plain"), "internal"},
	}
	for _, tc := range cases {
		if got := services.Kind(tc.err); got != tc.want {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestHintForRemoteSaysTryLater(t *testing.T) {
	err := services.Wrap(services.ErrRemote, "omdb", "fetch", "", nil)
	if !strings.Contains(services.Hint(err), "try again later") {
		t.Fatalf("unexpected hint %q", services.Hint(err))
	}
}
