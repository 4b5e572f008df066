package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rommapp/romm-sub002/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrCredentials, "igdb", "token", "refresh failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrCredentials) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"igdb", "token", "refresh failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected default detail, got %q", err.Error())
	}
}

func TestUnavailableErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("dial tcp: lookup api.igdb.com: no such host")
	err := fmt.Errorf("igdb search: %w", &services.UnavailableError{Service: "igdb", Err: cause})

	if !errors.Is(err, services.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable match, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable, got %v", err)
	}
	var unavailable *services.UnavailableError
	if !errors.As(err, &unavailable) || unavailable.Service != "igdb" {
		t.Fatalf("expected typed error, got %#v", unavailable)
	}
}

func TestIsFatalOnlyForConfiguration(t *testing.T) {
	if !services.IsFatal(services.Wrap(services.ErrConfiguration, "scan", "start", "no providers", nil)) {
		t.Fatal("expected configuration error to be fatal")
	}
	if services.IsFatal(&services.UnavailableError{Service: "moby"}) {
		t.Fatal("expected unavailable provider to be non-fatal")
	}
}
