package command

// maxLineLen bounds the accumulated line so a stream of garbage cannot
// grow the buffer without ever terminating a line.
const maxLineLen = 64

// LineReader accumulates serial bytes into command lines across ticks.
// Both CR and LF terminate a line, so CRLF terminals produce the line at
// the CR and an ignorable blank at the LF.
type LineReader struct {
	buf []byte
}

// Feed consumes one byte and reports a completed non-empty line.
func (r *LineReader) Feed(b byte) (string, bool) {
	switch b {
	case '\r', '\n':
		if len(r.buf) == 0 {
			return "", false
		}
		line := string(r.buf)
		r.buf = r.buf[:0]
		return line, true
	default:
		if len(r.buf) < maxLineLen {
			r.buf = append(r.buf, b)
		}
		return "", false
	}
}
