package fileutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDigestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rom.bin")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := DigestFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	want := Digests{
		CRC32: "0d4a1185",
		MD5:   "5eb63bbbe01eeed093cb22bb8f5acdc3",
		SHA1:  "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed",
		Size:  11,
	}
	if got != want {
		t.Fatalf("digests mismatch: got %+v, want %+v", got, want)
	}
}

func TestDigestFileMissing(t *testing.T) {
	if _, err := DigestFile(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDigestReaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DigestReader(ctx, strings.NewReader("data"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
