// util/resources.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

type zstdReadCloser struct {
	f *os.File
	z *zstd.Decoder
}

func (rc zstdReadCloser) Read(p []byte) (int, error) {
	return rc.z.Read(p)
}

func (rc zstdReadCloser) Close() error {
	rc.z.Close()
	return rc.f.Close()
}

// LoadResource returns a ReadCloser for the given data file,
// transparently decompressing it if its name ends with ".zst".
func LoadResource(dir, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(name, ".zst") {
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
		if err != nil {
			f.Close()
			return nil, err
		}
		return zstdReadCloser{f: f, z: zr}, nil
	}

	return f, nil
}

// LoadResourceBytes slurps the contents of the given data file,
// decompressing it if compressed.
func LoadResourceBytes(dir, name string) ([]byte, error) {
	r, err := LoadResource(dir, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
