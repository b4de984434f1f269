package backup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

var (
	ErrSourceMissing    = errors.New("backup source not found")
	ErrChecksumMismatch = errors.New("copy does not match source")
)

// Result describes a verified copy
type Result struct {
	Path     string
	Bytes    int64
	Checksum string
}

// Copy writes src to dst byte for byte, then re-reads dst and compares
// its BLAKE2b-256 digest with the one computed while reading src.
// The copy goes to a temp file in dst's directory and is renamed into place.
func Copy(src, dst string) (*Result, error) {
	in, err := os.Open(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, src)
		}
		return nil, err
	}
	defer in.Close()

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(dst)+".*.tmp")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	h, _ := blake2b.New256(nil)
	n, err := io.Copy(io.MultiWriter(tmp, h), in)
	if err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	want := h.Sum(nil)

	got, err := Checksum(tmp.Name())
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(want, got) {
		return nil, ErrChecksumMismatch
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return nil, err
	}
	return &Result{Path: dst, Bytes: n, Checksum: fmt.Sprintf("%x", want)}, nil
}

// Checksum returns the BLAKE2b-256 digest of a file
func Checksum(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, _ := blake2b.New256(nil)
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
