package count

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DecodeError reports invalid UTF-8 found while counting characters.
type DecodeError struct {
	Offset uint64
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid utf-8 sequence at byte %d", e.Offset)
}

func (e *DecodeError) Unwrap() error { return encoding.ErrInvalidUTF8 }

// isSpace matches ASCII whitespace: space, \t, \n, \f and \r. Vertical tab is not included.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// eachChunk reads r in chunks of at most size bytes and hands each one to fn.
func eachChunk(r io.Reader, size int, fn func([]byte)) error {
	buf := make([]byte, size)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			fn(buf[:n])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func lengthLookup(info os.FileInfo) Counts {
	return Counts{
		Bytes: Present(uint64(info.Size())),
		Chars: Absent(),
		Words: Absent(),
		Lines: Absent(),
	}
}

func scanBytes(r io.Reader, size int) (Counts, error) {
	var n uint64
	err := eachChunk(r, size, func(b []byte) {
		n += uint64(len(b))
	})
	if err != nil {
		return Counts{}, err
	}
	return Counts{Bytes: Present(n)}, nil
}

func scanLines(r io.Reader, size int) (Counts, error) {
	var n, lines uint64
	err := eachChunk(r, size, func(b []byte) {
		n += uint64(len(b))
		lines += uint64(bytes.Count(b, []byte{'\n'}))
	})
	if err != nil {
		return Counts{}, err
	}
	return Counts{Bytes: Present(n), Lines: Present(lines)}, nil
}

// scanWordsLines classifies raw bytes. ASCII whitespace never appears inside a
// multi-byte UTF-8 sequence, so results match decodeCount on valid input.
func scanWordsLines(r io.Reader, size int) (Counts, error) {
	var n, words, lines uint64
	inWord := false
	err := eachChunk(r, size, func(b []byte) {
		n += uint64(len(b))
		for _, c := range b {
			if c == '\n' {
				lines++
			}
			if isSpace(c) {
				if inWord {
					words++
				}
				inWord = false
			} else {
				inWord = true
			}
		}
	})
	if err != nil {
		return Counts{}, err
	}
	if inWord {
		words++
	}
	return Counts{
		Bytes: Present(n),
		Words: Present(words),
		Lines: Present(lines),
	}, nil
}

// decodeCount validates the stream as strict UTF-8 while counting. A sequence
// split across two reads is carried into the next one.
func decodeCount(r io.Reader, size int) (Counts, error) {
	var n, chars, words, lines uint64
	inWord := false
	buf := make([]byte, size+utf8.UTFMax)
	dst := make([]byte, len(buf))
	carry := 0
	for {
		m, rerr := r.Read(buf[carry : carry+size])
		if rerr != nil && rerr != io.EOF {
			return Counts{}, rerr
		}
		data := buf[:carry+m]
		atEOF := rerr == io.EOF
		_, valid, terr := encoding.UTF8Validator.Transform(dst, data, atEOF)

		text := data[:valid]
		n += uint64(len(text))
		for i := 0; i < len(text); {
			c := text[i]
			if c < utf8.RuneSelf {
				i++
				if c == '\n' {
					lines++
				}
				if isSpace(c) {
					if inWord {
						words++
					}
					inWord = false
				} else {
					inWord = true
				}
			} else {
				_, w := utf8.DecodeRune(text[i:])
				i += w
				inWord = true
			}
			chars++
		}

		switch {
		case terr == nil:
			carry = 0
		case errors.Is(terr, transform.ErrShortSrc):
			carry = copy(buf, data[valid:])
		default:
			return Counts{}, &DecodeError{Offset: n}
		}
		if atEOF {
			break
		}
	}
	if inWord {
		words++
	}
	return Counts{
		Bytes: Present(n),
		Chars: Present(chars),
		Words: Present(words),
		Lines: Present(lines),
	}, nil
}
