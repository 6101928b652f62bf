package runlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// entryWriter appends one run's entries to a zstd-compressed JSONL file.
// The file opens lazily on the first entry and is named by the run's UTC
// start time, so a log directory lists chronologically. Runs starting in
// the same second append to the same file as separate zstd frames.
type entryWriter struct {
	dir string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func newEntryWriter(dir string) *entryWriter {
	return &entryWriter{dir: dir}
}

func (w *entryWriter) Write(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		if err := w.openLocked(); err != nil {
			return err
		}
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *entryWriter) openLocked() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("run-%s.jsonl.zst", time.Now().UTC().Format("20060102-150405"))
	f, err := os.OpenFile(filepath.Join(w.dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	return nil
}

func (w *entryWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	_ = w.w.Flush()
	err := w.enc.Close()
	_ = w.f.Close()
	w.f, w.enc, w.w = nil, nil, nil
	return err
}
