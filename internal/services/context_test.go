package services_test

import (
	"context"
	"testing"

	"github.com/rommapp/romm-sub002/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithScanID(ctx, "scan-1")
	ctx = services.WithROM(ctx, "Tetris (World).gb")
	ctx = services.WithPlatform(ctx, "gb")
	ctx = services.WithProvider(ctx, "igdb")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.ScanIDFromContext(ctx); !ok || id != "scan-1" {
		t.Fatalf("unexpected scan id: %v %v", id, ok)
	}
	if rom, ok := services.ROMFromContext(ctx); !ok || rom != "Tetris (World).gb" {
		t.Fatalf("unexpected rom: %v %v", rom, ok)
	}
	if slug, ok := services.PlatformFromContext(ctx); !ok || slug != "gb" {
		t.Fatalf("unexpected platform: %v %v", slug, ok)
	}
	if provider, ok := services.ProviderFromContext(ctx); !ok || provider != "igdb" {
		t.Fatalf("unexpected provider: %v %v", provider, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithProvider(ctx, "")
	ctx = services.WithScanID(ctx, "")
	if _, ok := services.ProviderFromContext(ctx); ok {
		t.Fatal("expected no provider value")
	}
	if _, ok := services.ScanIDFromContext(ctx); ok {
		t.Fatal("expected no scan id value")
	}
}
