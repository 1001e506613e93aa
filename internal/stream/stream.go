// Package stream opens the byte streams the command line reads and writes.
//
// Inputs and outputs named "" or "-" are stdin and stdout. Zstandard
// compressed input is detected by its frame magic and decompressed
// transparently; an output path ending in ".zst" is compressed.
//
// File outputs are written to a temporary file in the destination directory
// and only renamed into place by Commit, so a failed run never leaves a
// partial file behind.
package stream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the little-endian frame magic number 0xFD2FB528.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// CompressedExt marks an output path that is written zstd-compressed.
const CompressedExt = ".zst"

// ErrClosed is returned by Write after Commit or Abort.
var ErrClosed = errors.New("stream: output closed")

func isStd(path string) bool {
	return path == "" || path == "-"
}

// input is a buffered reader that may sit on top of a zstd decoder.
type input struct {
	io.Reader
	dec  *zstd.Decoder
	file *os.File
}

func (in *input) Close() error {
	if in.dec != nil {
		in.dec.Close()
	}
	if in.file != nil {
		return in.file.Close()
	}
	return nil
}

// OpenInput opens path for reading, or reads stdin for "" and "-".
// Closing the result never closes stdin.
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	in := &input{}
	src := stdin
	if !isStd(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		in.file = f
		src = f
	}

	br := bufio.NewReader(src)
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		in.Close()
		return nil, err
	}
	if !bytes.Equal(magic, zstdMagic) {
		in.Reader = br
		return in, nil
	}

	dec, err := zstd.NewReader(br)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("stream: zstd: %w", err)
	}
	in.dec = dec
	in.Reader = dec
	return in, nil
}

// Output is a pending write to a file or stdout.
type Output struct {
	bw   *bufio.Writer
	enc  *zstd.Encoder
	file *os.File
	path string
	temp string
	done bool
	n    int64
}

// CreateOutput prepares path for writing, or writes stdout for "" and "-".
// Nothing is visible at path until Commit.
func CreateOutput(path string, stdout io.Writer) (*Output, error) {
	if isStd(path) {
		return &Output{bw: bufio.NewWriter(stdout)}, nil
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, err
	}
	o := &Output{bw: bufio.NewWriter(f), file: f, path: path, temp: f.Name()}

	if strings.HasSuffix(path, CompressedExt) {
		enc, err := zstd.NewWriter(o.bw)
		if err != nil {
			o.Abort()
			return nil, fmt.Errorf("stream: zstd: %w", err)
		}
		o.enc = enc
	}
	return o, nil
}

// Write implements io.Writer.
func (o *Output) Write(p []byte) (int, error) {
	if o.done {
		return 0, ErrClosed
	}
	w := io.Writer(o.bw)
	if o.enc != nil {
		w = o.enc
	}
	n, err := w.Write(p)
	o.n += int64(n)
	return n, err
}

// Written returns the number of bytes accepted by Write, before
// compression.
func (o *Output) Written() int64 {
	return o.n
}

// Commit flushes all data and moves the file into place. The output is
// aborted if any step fails.
func (o *Output) Commit() error {
	if o.done {
		return ErrClosed
	}
	if err := o.commit(); err != nil {
		o.Abort()
		return err
	}
	o.done = true
	return nil
}

func (o *Output) commit() error {
	if o.enc != nil {
		if err := o.enc.Close(); err != nil {
			return err
		}
	}
	if err := o.bw.Flush(); err != nil {
		return err
	}
	if o.file == nil {
		return nil
	}
	if err := o.file.Chmod(0o644); err != nil {
		return err
	}
	if err := o.file.Close(); err != nil {
		return err
	}
	return os.Rename(o.temp, o.path)
}

// Abort discards a pending output. It is a no-op after Commit, so it can be
// deferred unconditionally.
func (o *Output) Abort() error {
	if o.done {
		return nil
	}
	o.done = true
	if o.file == nil {
		return nil
	}
	o.file.Close()
	if err := os.Remove(o.temp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
