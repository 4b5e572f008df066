package fileutil

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// Digests holds the lowercase hex checksums of a file.
type Digests struct {
	CRC32 string
	MD5   string
	SHA1  string
	Size  int64
}

// DigestFile streams path once through CRC32, MD5 and SHA1.
func DigestFile(ctx context.Context, path string) (Digests, error) {
	in, err := os.Open(path)
	if err != nil {
		return Digests{}, err
	}
	defer in.Close()
	digests, err := DigestReader(ctx, in)
	if err != nil {
		return Digests{}, fmt.Errorf("digest %s: %w", path, err)
	}
	return digests, nil
}

// DigestReader is DigestFile over an arbitrary reader. It stops early when
// ctx is cancelled.
func DigestReader(ctx context.Context, r io.Reader) (Digests, error) {
	crcHasher := crc32.NewIEEE()
	md5Hasher := md5.New()
	sha1Hasher := sha1.New()
	multi := io.MultiWriter(crcHasher, md5Hasher, sha1Hasher)

	written, err := io.Copy(multi, &contextReader{ctx: ctx, r: r})
	if err != nil {
		return Digests{}, err
	}
	return Digests{
		CRC32: hex.EncodeToString(crcHasher.Sum(nil)),
		MD5:   hex.EncodeToString(md5Hasher.Sum(nil)),
		SHA1:  hex.EncodeToString(sha1Hasher.Sum(nil)),
		Size:  written,
	}, nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
