package gateway

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// ErrFrameTooLarge is returned for a frame longer than the reader's limit.
// The offending frame has been consumed; the next read starts at the
// following frame.
var ErrFrameTooLarge = errors.New("frame exceeds maximum size")

// FrameReader splits a byte stream into newline-terminated frames. A
// trailing carriage return is dropped and blank lines are skipped.
type FrameReader struct {
	br  *bufio.Reader
	max int
}

// NewFrameReader reads frames of at most max bytes from r.
func NewFrameReader(r io.Reader, max int) *FrameReader {
	size := 4096
	if max+1 < size {
		size = max + 1
	}
	if size < 16 {
		size = 16
	}
	return &FrameReader{br: bufio.NewReaderSize(r, size), max: max}
}

// ReadFrame returns the next non-blank frame. An unterminated final frame is
// returned before io.EOF.
func (r *FrameReader) ReadFrame() ([]byte, error) {
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		return line, nil
	}
}

func (r *FrameReader) readLine() ([]byte, error) {
	var (
		buf      []byte
		tooLarge bool
	)
	for {
		chunk, err := r.br.ReadSlice('\n')
		terminated := err == nil
		if terminated {
			chunk = chunk[:len(chunk)-1]
		}

		if !tooLarge {
			if len(buf)+len(chunk) > r.max {
				tooLarge = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		switch {
		case terminated:
			if tooLarge {
				return nil, ErrFrameTooLarge
			}
			if buf == nil {
				buf = []byte{}
			}
			return buf, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && len(buf) > 0 && !tooLarge:
			return buf, nil
		default:
			return nil, err
		}
	}
}

// encodeFrame appends the frame delimiter to a compact JSON document.
func encodeFrame(doc []byte) []byte {
	out := make([]byte, 0, len(doc)+1)
	out = append(out, doc...)
	return append(out, '\n')
}
