package input

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"
)

// Names produced by the terminal decoder that have no DOM equivalent above.
const (
	KeyEnter   = "Enter"
	KeyUnknown = "Unidentified"
)

// TerminalDecoder reads key presses from a terminal in raw mode.
type TerminalDecoder struct {
	reader *bufio.Reader
}

// NewTerminalDecoder wraps r. Passing a *bufio.Reader reuses it.
func NewTerminalDecoder(r io.Reader) *TerminalDecoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &TerminalDecoder{reader: br}
}

// ReadKey blocks until one key press is decoded.
func (d *TerminalDecoder) ReadKey() (Key, error) {
	if d.reader == nil {
		return Key{}, errors.New("no reader available")
	}
	b, err := d.reader.ReadByte()
	if err != nil {
		return Key{}, err
	}

	switch {
	case b == 0x1b:
		return d.parseEscapeSequence(), nil
	case b == ' ':
		return Key{Name: KeySpace}, nil
	case b == '\r' || b == '\n':
		return Key{Name: KeyEnter}, nil
	case b >= 0x01 && b <= 0x1a:
		// Ctrl+A .. Ctrl+Z
		return Key{Name: string(rune('a' + b - 1)), Ctrl: true}, nil
	case b < utf8.RuneSelf:
		return Key{Name: string(rune(b))}, nil
	}

	buf := []byte{b}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		next, err := d.reader.ReadByte()
		if err != nil {
			break
		}
		buf = append(buf, next)
	}
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return Key{Name: KeyUnknown}, nil
	}
	return Key{Name: string(r)}, nil
}

func (d *TerminalDecoder) parseEscapeSequence() Key {
	if d.reader.Buffered() == 0 {
		return Key{Name: KeyEscape}
	}
	next, err := d.reader.ReadByte()
	if err != nil {
		return Key{Name: KeyEscape}
	}

	switch next {
	case '[':
		return d.parseCSI()
	case 'O':
		final, err := d.reader.ReadByte()
		if err != nil {
			return Key{Name: KeyEscape}
		}
		switch final {
		case 'A':
			return Key{Name: KeyArrowUp}
		case 'B':
			return Key{Name: KeyArrowDown}
		case 'C':
			return Key{Name: KeyArrowRight}
		case 'D':
			return Key{Name: KeyArrowLeft}
		case 'H':
			return Key{Name: KeyHome}
		case 'F':
			return Key{Name: KeyEnd}
		default:
			return Key{Name: KeyUnknown}
		}
	default:
		// Alt+key arrives as ESC followed by the key.
		return Key{Name: string(rune(next)), Meta: true}
	}
}

func (d *TerminalDecoder) parseCSI() Key {
	seq := []byte{}
	for {
		b, err := d.reader.ReadByte()
		if err != nil {
			return Key{Name: KeyEscape}
		}
		seq = append(seq, b)
		if (b >= 'A' && b <= 'Z') || b == '~' {
			break
		}
		if len(seq) > 5 {
			break
		}
	}

	switch seq[len(seq)-1] {
	case 'A':
		return Key{Name: KeyArrowUp}
	case 'B':
		return Key{Name: KeyArrowDown}
	case 'C':
		return Key{Name: KeyArrowRight}
	case 'D':
		return Key{Name: KeyArrowLeft}
	case 'H':
		return Key{Name: KeyHome}
	case 'F':
		return Key{Name: KeyEnd}
	case '~':
		switch string(seq) {
		case "1~", "7~":
			return Key{Name: KeyHome}
		case "4~", "8~":
			return Key{Name: KeyEnd}
		case "5~":
			return Key{Name: KeyPageUp}
		case "6~":
			return Key{Name: KeyPageDown}
		}
	}
	return Key{Name: KeyUnknown}
}
