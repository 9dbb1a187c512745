package repl

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 64 * 1024

var errLineTooLong = errors.New("input line too long")

// readLine returns the next line without its terminator. A line longer than
// limit is consumed up to its newline and reported as errLineTooLong, so the
// next call starts on a fresh line. A final line without a newline is
// returned before io.EOF.
func readLine(r *bufio.Reader, limit int) (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(strings.TrimRight(string(chunk), "\r\n")) > limit {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) && (tooLong || len(buf) > 0) {
				break
			}
			return "", err
		}
		break
	}
	if tooLong {
		return "", errLineTooLong
	}
	return strings.TrimRight(string(buf), "\r\n"), nil
}
