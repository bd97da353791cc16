// Package batch canonicalizes files of equations, one per line.
package batch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/logger"
)

// DefaultLockTimeout is used when Options.LockTimeout is zero.
const DefaultLockTimeout = 5 * time.Second

// LineError reports which input line failed.
type LineError struct {
	Line  int
	Input string
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// OutputPath replaces the extension of in with ext. "eq.txt" with ".out"
// becomes "eq.out"; a path without an extension just gains ext.
func OutputPath(in, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.TrimSuffix(in, filepath.Ext(in)) + ext
}

// Process canonicalizes every non-blank line of r and writes one result per
// line to w. It stops at the first line that fails and returns the number of
// results written before it.
func Process(ctx context.Context, r io.Reader, w io.Writer, p *gopoly.Pipeline) (int, error) {
	sc := bufio.NewScanner(r)
	n, line := 0, 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return n, err
		}
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		out, err := p.Canonicalize(text)
		if err != nil {
			return n, &LineError{Line: line, Input: text, Err: err}
		}
		if _, err := io.WriteString(w, out+"\n"); err != nil {
			return n, fmt.Errorf("writing result: %w", err)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("reading input: %w", err)
	}
	return n, nil
}

// Options controls ProcessFile.
type Options struct {
	Output      string // defaults to OutputPath(in, ".out")
	LockTimeout time.Duration
}

// ProcessFile canonicalizes the file at in and appends the results to the
// output file. Nothing is appended unless every line succeeds. The append runs
// under an exclusive lock on "<output>.lock".
func ProcessFile(ctx context.Context, in string, p *gopoly.Pipeline, opts Options) (string, int, error) {
	out := opts.Output
	if out == "" {
		out = OutputPath(in, ".out")
	}
	log := logger.L().WithComponent("batch")

	f, err := os.Open(in)
	if err != nil {
		return out, 0, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	n, err := Process(ctx, f, &buf, p)
	if err != nil {
		log.Warn("batch failed", logger.Fields(logger.FieldPath, in, logger.FieldError, err))
		return out, 0, err
	}

	lock, err := lockOutput(ctx, out, opts.LockTimeout)
	if err != nil {
		return out, 0, err
	}
	defer lock.Unlock()

	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return out, 0, fmt.Errorf("opening output: %w", err)
	}
	if _, err := buf.WriteTo(dst); err != nil {
		dst.Close()
		return out, 0, fmt.Errorf("appending results: %w", err)
	}
	if err := dst.Close(); err != nil {
		return out, 0, fmt.Errorf("closing output: %w", err)
	}

	log.Info("batch complete", logger.Fields(logger.FieldPath, out, "equations", n))
	return out, n, nil
}

// lockOutput acquires an exclusive lock adjacent to path. The caller must
// unlock it.
func lockOutput(ctx context.Context, path string, timeout time.Duration) (*flock.Flock, error) {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	lockPath := path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	lock := flock.New(lockPath)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquiring lock on %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("timeout waiting for lock on %s", lockPath)
	}
	return lock, nil
}
