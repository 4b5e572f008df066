package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rommapp/romm-sub002/internal/fileutil"
	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
)

// ErrLibraryMissing reports that the roms directory does not exist.
var ErrLibraryMissing = errors.New("library roms directory not found")

// File is a ROM file discovered under <library>/roms/<platform>/.
type File struct {
	Platform platform.Identity
	Folder   string
	Path     string
	FileName string
	Size     int64
}

// Walk lists ROM files one level below each platform folder of romsDir.
// Hidden entries and nested directories are skipped. When extensions is
// non-empty only matching files are returned. platforms restricts the walk
// to the given folder names or slugs.
func Walk(ctx context.Context, romsDir string, extensions []string, platforms []string) ([]File, error) {
	entries, err := os.ReadDir(romsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrLibraryMissing, romsDir)
		}
		return nil, fmt.Errorf("read roms directory: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		identity := platform.Resolve(entry.Name())
		if len(platforms) > 0 && !wanted(platforms, entry.Name(), identity.Slug) {
			continue
		}
		dir := filepath.Join(romsDir, entry.Name())
		romEntries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read platform directory %s: %w", dir, err)
		}
		for _, romEntry := range romEntries {
			name := romEntry.Name()
			if romEntry.IsDir() || strings.HasPrefix(name, ".") || !romEntry.Type().IsRegular() {
				continue
			}
			if !hasExtension(name, extensions) {
				continue
			}
			info, err := romEntry.Info()
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", name, err)
			}
			files = append(files, File{
				Platform: identity,
				Folder:   entry.Name(),
				Path:     filepath.Join(dir, name),
				FileName: name,
				Size:     info.Size(),
			})
		}
	}
	slices.SortFunc(files, func(a, b File) int {
		if c := strings.Compare(a.Platform.Slug, b.Platform.Slug); c != 0 {
			return c
		}
		return strings.Compare(a.FileName, b.FileName)
	})
	return files, nil
}

// Hash computes the checksums of f in a single read.
func (f File) Hash(ctx context.Context) (metadata.Hashes, error) {
	digests, err := fileutil.DigestFile(ctx, f.Path)
	if err != nil {
		return metadata.Hashes{}, err
	}
	return metadata.Hashes{CRC32: digests.CRC32, MD5: digests.MD5, SHA1: digests.SHA1}, nil
}

func hasExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return ext != "" && slices.Contains(extensions, ext)
}

func wanted(filter []string, folder, slug string) bool {
	for _, value := range filter {
		value = strings.TrimSpace(value)
		if strings.EqualFold(value, folder) || strings.EqualFold(value, slug) {
			return true
		}
	}
	return false
}

// Stat describes a single file outside a walk.
func Stat(path string, identity platform.Identity) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}
	return File{
		Platform: identity,
		Folder:   filepath.Base(filepath.Dir(path)),
		Path:     path,
		FileName: info.Name(),
		Size:     info.Size(),
	}, nil
}
