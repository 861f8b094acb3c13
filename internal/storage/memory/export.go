package memory

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// FileName builds the export name for a recording.
func FileName(rec *Recording, compress bool) string {
	vessel := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '/', '\\', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, rec.Flight.VesselName)
	if vessel == "" {
		vessel = "flight"
	}

	name := fmt.Sprintf("%s_%s.msgpack", vessel, rec.Flight.StartTime.Format("20060102_150405"))
	if compress {
		name += ".zst"
	}
	return name
}

func (b *Backend) export(rec *Recording) (string, error) {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(b.cfg.OutputDir, FileName(rec, b.cfg.CompressOutput))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := WriteRecording(f, rec, b.cfg.CompressOutput); err != nil {
		return "", err
	}
	return path, f.Close()
}

// WriteRecording encodes rec as msgpack, optionally zstd compressed.
func WriteRecording(w io.Writer, rec *Recording, compress bool) error {
	if !compress {
		if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
			return fmt.Errorf("failed to encode recording: %w", err)
		}
		return nil
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer zw.Close()

	if err := msgpack.NewEncoder(zw).Encode(rec); err != nil {
		return fmt.Errorf("failed to encode recording: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return nil
}

// ReadRecording decodes a recording written by WriteRecording, compressed
// or not.
func ReadRecording(r io.Reader) (*Recording, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(zstdMagic))

	var src io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	var rec Recording
	if err := msgpack.NewDecoder(src).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode recording: %w", err)
	}
	return &rec, nil
}

// ReadFile loads a recording from disk.
func ReadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecording(f)
}
