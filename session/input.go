package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidInteger is returned by ParseInt for input that is not an integer.
var ErrInvalidInteger = errors.New("input is not a valid integer")

// errInputClosed signals that the operator input reached EOF.
var errInputClosed = errors.New("input closed")

// ParseInt parses the first whitespace separated field of the input as a base 10 integer.
// The whole field must be an integer, so "1x" is rejected rather than read as 1.
func ParseInt(input string) (int, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return 0, ErrInvalidInteger
	}

	value, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, errors.Join(ErrInvalidInteger, err)
	}

	return value, nil
}

// lineReader delivers input lines over a channel so reads can be abandoned on context cancellation.
// The reading goroutine stops once ctx is done.
type lineReader struct {
	lines <-chan string
	err   <-chan error
}

func newLineReader(ctx context.Context, in io.Reader) *lineReader {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			errs <- err
		}
	}()

	return &lineReader{lines: lines, err: errs}
}

func (r *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if ok {
			return line, nil
		}

		select {
		case err := <-r.err:
			return "", err
		default:
			return "", errInputClosed
		}
	}
}

// nextNonBlank skips empty lines, like a stream extraction that skips leading whitespace.
func (r *lineReader) nextNonBlank(ctx context.Context) (string, error) {
	for {
		line, err := r.next(ctx)
		if err != nil {
			return "", err
		}

		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}
