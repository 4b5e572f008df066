package services

import "context"

type contextKey string

const (
	scanIDKey    contextKey = "scan_id"
	romKey       contextKey = "rom"
	platformKey  contextKey = "platform"
	providerKey  contextKey = "provider"
	requestIDKey contextKey = "request_id"
)

// WithScanID annotates context with the library scan identifier.
func WithScanID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, scanIDKey, id)
}

// ScanIDFromContext extracts the scan identifier if present.
func ScanIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, scanIDKey)
}

// WithROM annotates context with the ROM file name being matched.
func WithROM(ctx context.Context, fileName string) context.Context {
	if fileName == "" {
		return ctx
	}
	return context.WithValue(ctx, romKey, fileName)
}

// ROMFromContext returns the ROM file name if present.
func ROMFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, romKey)
}

// WithPlatform annotates context with the universal platform slug.
func WithPlatform(ctx context.Context, slug string) context.Context {
	if slug == "" {
		return ctx
	}
	return context.WithValue(ctx, platformKey, slug)
}

// PlatformFromContext returns the platform slug if present.
func PlatformFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, platformKey)
}

// WithProvider annotates context with the metadata provider name.
func WithProvider(ctx context.Context, provider string) context.Context {
	if provider == "" {
		return ctx
	}
	return context.WithValue(ctx, providerKey, provider)
}

// ProviderFromContext returns the provider name if present.
func ProviderFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, providerKey)
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, requestIDKey)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
