package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeROM(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkDiscoversPlatformFolders(t *testing.T) {
	roms := filepath.Join(t.TempDir(), "roms")
	writeROM(t, filepath.Join(roms, "nes", "Super Mario Bros. (USA).nes"), "hello world")
	writeROM(t, filepath.Join(roms, "nes", ".hidden.nes"), "x")
	writeROM(t, filepath.Join(roms, "nes", "readme.txt"), "x")
	writeROM(t, filepath.Join(roms, "nes", "multi", "disc1.nes"), "x")
	writeROM(t, filepath.Join(roms, "famicom", "Zelda (Japan).nes"), "x")
	writeROM(t, filepath.Join(roms, "mystery", "game.nes"), "x")

	files, err := Walk(context.Background(), roms, []string{"nes"}, nil)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %+v", files)
	}
	// "famicom" is an alias of nes; files sort by slug then name.
	if files[0].Platform.Slug != "mystery" || files[1].Platform.Slug != "nes" || files[2].Platform.Slug != "nes" {
		t.Fatalf("unexpected platforms %+v", files)
	}
	if files[1].FileName != "Super Mario Bros. (USA).nes" || files[1].Size != 11 {
		t.Fatalf("unexpected file %+v", files[1])
	}

	hashes, err := files[1].Hash(context.Background())
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hashes.CRC32 != "0d4a1185" || hashes.MD5 != "5eb63bbbe01eeed093cb22bb8f5acdc3" {
		t.Fatalf("unexpected hashes %+v", hashes)
	}

	filtered, err := Walk(context.Background(), roms, nil, []string{"famicom"})
	if err != nil {
		t.Fatalf("Walk filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Folder != "famicom" {
		t.Fatalf("unexpected filtered files %+v", filtered)
	}
}

func TestWalkMissingLibrary(t *testing.T) {
	_, err := Walk(context.Background(), filepath.Join(t.TempDir(), "roms"), nil, nil)
	if !errors.Is(err, ErrLibraryMissing) {
		t.Fatalf("expected ErrLibraryMissing, got %v", err)
	}
}
