package rtio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"loomrt/internal/format"
)

// Runtime is the formatted I/O surface of the Loom runtime layer,
// implemented natively against Go streams. It defines the observable
// semantics the emitted assembly must match and is the surface a host
// embedder uses when running Loom code without compiling it.
//
// Write calls share no mutable state and may be freely interleaved. Reads
// consume from one buffered stream and must be serialized by the caller.
type Runtime struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a runtime reading tokens from in and writing text to out.
func New(in io.Reader, out io.Writer) *Runtime {
	return &Runtime{in: bufio.NewReader(in), out: out}
}

// ErrNoTerminator reports a text buffer with no nul byte. The emitted
// runtime cannot detect this and reads past the buffer; the native runtime
// is bounds-checked and reports it instead.
var ErrNoTerminator = errors.New("rtio: text buffer has no nul terminator")

// ErrSyntax reports that the input does not begin with a decimal token.
var ErrSyntax = errors.New("rtio: input does not begin with a decimal token")

// WriteScalar renders the low `width` bits of v as decimal text under the
// chosen signedness, with an optional trailing newline. High-order bits
// beyond the width are truncated, exactly as the emitted runtime's
// specifier length modifiers truncate the promoted argument; values out of
// range for the width are therefore rendered silently wrong, not rejected.
func (rt *Runtime) WriteScalar(w format.Width, s format.Sign, newline bool, v uint64) error {
	var text string
	if s == format.Signed {
		text = strconv.FormatInt(truncSigned(w, v), 10)
	} else {
		text = strconv.FormatUint(truncUnsigned(w, v), 10)
	}
	if newline {
		text += "\n"
	}
	_, err := io.WriteString(rt.out, text)
	return err
}

// WriteBool renders a zero/non-zero word as "false"/"true". Booleans go
// through the literal strings, never a numeric rendering.
func (rt *Runtime) WriteBool(v uint64, newline bool) error {
	text := "false"
	if v != 0 {
		text = "true"
	}
	if newline {
		text += "\n"
	}
	_, err := io.WriteString(rt.out, text)
	return err
}

// WriteCStr emits the bytes of buf up to (not including) its nul
// terminator. No newline is added.
func (rt *Runtime) WriteCStr(buf []byte) error {
	n, ok := CStrLen(buf)
	if !ok {
		return ErrNoTerminator
	}
	_, err := rt.out.Write(buf[:n])
	return err
}

// WriteBuf emits p verbatim. No terminator is needed and none is honored.
func (rt *Runtime) WriteBuf(p []byte) error {
	_, err := rt.out.Write(p)
	return err
}

// ReadI64 parses one signed 64-bit decimal token, blocking until input is
// available or the stream ends. Token shape follows the host parser: skip
// ASCII whitespace, an optional sign, then at least one digit, stopping at
// the first non-digit. io.EOF is returned when the stream ends before any
// token byte; ErrSyntax when the pending input is not a token.
func (rt *Runtime) ReadI64() (int64, error) {
	if err := rt.skipSpace(); err != nil {
		return 0, err
	}

	b, err := rt.in.ReadByte()
	if err != nil {
		return 0, err
	}
	neg := false
	if b == '+' || b == '-' {
		neg = b == '-'
		b, err = rt.in.ReadByte()
		if err != nil {
			return 0, ErrSyntax
		}
	}
	if b < '0' || b > '9' {
		_ = rt.in.UnreadByte()
		return 0, ErrSyntax
	}

	// Accumulate with wraparound, matching the two's-complement
	// accumulation of the emitted runtime's host parser on overflow.
	var v uint64
	for {
		v = v*10 + uint64(b-'0')
		b, err = rt.in.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		if b < '0' || b > '9' {
			_ = rt.in.UnreadByte()
			break
		}
	}
	if neg {
		return -int64(v), nil
	}
	return int64(v), nil
}

func (rt *Runtime) skipSpace() error {
	for {
		b, err := rt.in.ReadByte()
		if err != nil {
			return err
		}
		switch b {
		case ' ', '\t', '\n', '\v', '\f', '\r':
		default:
			return rt.in.UnreadByte()
		}
	}
}

// CStrLen scans buf forward for its nul terminator. It returns the offset
// of the first nul byte and true, or len(buf) and false when the buffer is
// unterminated.
func CStrLen(buf []byte) (int, bool) {
	for i, b := range buf {
		if b == 0 {
			return i, true
		}
	}
	return len(buf), false
}

func truncSigned(w format.Width, v uint64) int64 {
	switch w {
	case format.W8:
		return int64(int8(v))
	case format.W16:
		return int64(int16(v))
	case format.W32:
		return int64(int32(v))
	case format.W64:
		return int64(v)
	}
	panic(fmt.Sprintf("rtio: no signed interpretation for width %d", int(w)))
}

func truncUnsigned(w format.Width, v uint64) uint64 {
	switch w {
	case format.W8:
		return uint64(uint8(v))
	case format.W16:
		return uint64(uint16(v))
	case format.W32:
		return uint64(uint32(v))
	case format.W64:
		return v
	}
	panic(fmt.Sprintf("rtio: no unsigned interpretation for width %d", int(w)))
}
