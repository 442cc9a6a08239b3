package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader provides context-aware input reading that can be interrupted.
type LineReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewLineReader creates a new context-aware line reader.
func NewLineReader(reader io.Reader) *LineReader {
	if reader == nil {
		panic("reader cannot be nil")
	}

	return &LineReader{
		reader: bufio.NewReader(reader),
	}
}

// ReadLine reads one line, trimmed of surrounding whitespace, respecting
// context cancellation.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		// The reading goroutine keeps running until its read completes,
		// but we return to the caller immediately.
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			if !errors.Is(res.err, io.EOF) {
				return "", res.err
			}
			value := strings.TrimSpace(res.value)
			if value == "" {
				// Input is exhausted (e.g. closed stdin). Treat it as a
				// cancellation rather than an empty answer.
				return "", ErrInputCancelled
			}
			// A final line without a trailing newline is still an answer.
			return value, nil
		}
		return strings.TrimSpace(res.value), nil
	}
}
