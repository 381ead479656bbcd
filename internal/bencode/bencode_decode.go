package bencode

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// MaxDepth bounds list and dictionary nesting.
const MaxDepth = 512

// BencodeDecoder walks an immutable byte slice with an explicit position.
// It holds no state beyond a single Decode call chain.
type BencodeDecoder struct {
	data  []byte
	pos   int
	depth int
}

// NewDecoder returns a decoder positioned at the start of data. data is not
// modified or retained by decoded values.
func NewDecoder(data []byte) *BencodeDecoder {
	return &BencodeDecoder{data: data}
}

// Offset returns the position of the next unread byte.
func (d *BencodeDecoder) Offset() int {
	return d.pos
}

// Decode decodes the value starting at the current offset. On failure no
// partial value is returned.
func (d *BencodeDecoder) Decode() (Value, error) {
	v, err := d.decodeValue()
	if err != nil {
		// v may be a typed nil List or Dict, which is a non-nil Value
		return nil, err
	}
	return v, nil
}

func (d *BencodeDecoder) peek() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, d.errorAt(d.pos, ErrUnexpectedEOF)
	}
	return d.data[d.pos], nil
}

func (d *BencodeDecoder) advance() {
	d.pos++
}

func (d *BencodeDecoder) take(n int) ([]byte, error) {
	if n < 0 || n > len(d.data)-d.pos {
		return nil, d.errorAt(d.pos, fmt.Errorf("%w: need %d bytes, %d left", ErrUnexpectedEOF, n, len(d.data)-d.pos))
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *BencodeDecoder) errorAt(offset int, err error) error {
	return &DecodeError{Offset: offset, Err: err}
}

func (d *BencodeDecoder) enter() error {
	d.depth++
	if d.depth > MaxDepth {
		return d.errorAt(d.pos, ErrTooDeep)
	}
	return nil
}

func (d *BencodeDecoder) leave() {
	d.depth--
}

func (d *BencodeDecoder) decodeValue() (Value, error) {
	tag, err := d.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case tag == 'i':
		return d.decodeInt()
	case tag == 'l':
		return d.decodeList()
	case tag == 'd':
		return d.decodeDict()
	case isDigit(tag):
		return d.decodeString()
	default:
		return nil, d.errorAt(d.pos, fmt.Errorf("%w %q", ErrUnknownTag, tag))
	}
}

// decodeInt decodes an integer (i<number>e)
func (d *BencodeDecoder) decodeInt() (Integer, error) {
	d.advance() // skip 'i'

	start := d.pos
	if c, err := d.peek(); err != nil {
		return 0, err
	} else if c == '-' {
		d.advance()
	}

	digits := d.skipDigits()
	c, err := d.peek()
	if err != nil {
		return 0, err
	}
	if digits == 0 || c != 'e' {
		return 0, d.errorAt(d.pos, fmt.Errorf("%w: %q", ErrInvalidInteger, d.data[start:d.pos+1]))
	}

	n, err := strconv.ParseInt(string(d.data[start:d.pos]), 10, 64)
	if err != nil {
		return 0, d.errorAt(start, fmt.Errorf("%w: %v", ErrInvalidInteger, err))
	}

	d.advance() // skip 'e'
	return Integer(n), nil
}

// decodeString decodes a byte string (<length>:<bytes>)
func (d *BencodeDecoder) decodeString() (String, error) {
	start := d.pos
	digits := d.skipDigits()

	c, err := d.peek()
	if err != nil {
		return nil, err
	}
	if digits == 0 || c != ':' {
		return nil, d.errorAt(d.pos, fmt.Errorf("%w: expected ':' after length, got %q", ErrInvalidLength, c))
	}

	length, err := strconv.Atoi(string(d.data[start:d.pos]))
	if err != nil {
		return nil, d.errorAt(start, fmt.Errorf("%w: %v", ErrInvalidLength, err))
	}

	d.advance() // skip ':'

	b, err := d.take(length)
	if err != nil {
		return nil, err
	}
	return String(bytes.Clone(b)), nil
}

// decodeList decodes a list (l<elements>e)
func (d *BencodeDecoder) decodeList() (List, error) {
	start := d.pos
	d.advance() // skip 'l'

	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	result := List{}
	for {
		c, err := d.peek()
		if err != nil {
			return nil, d.errorAt(start, fmt.Errorf("%w: unterminated list", ErrMissingTerminator))
		}
		if c == 'e' {
			break
		}

		item, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	d.advance() // skip 'e'
	return result, nil
}

// decodeDict decodes a dictionary (d<key-value pairs>e)
func (d *BencodeDecoder) decodeDict() (Dict, error) {
	start := d.pos
	d.advance() // skip 'd'

	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	result := Dict{}
	for {
		c, err := d.peek()
		if err != nil {
			return nil, d.errorAt(start, fmt.Errorf("%w: unterminated dictionary", ErrMissingTerminator))
		}
		if c == 'e' {
			break
		}

		// Keys must be byte strings holding UTF-8 text
		keyStart := d.pos
		if !isDigit(c) {
			return nil, d.errorAt(keyStart, fmt.Errorf("%w: key must be a byte string, got tag %q", ErrInvalidKey, c))
		}
		key, err := d.decodeString()
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(key) {
			return nil, d.errorAt(keyStart, fmt.Errorf("%w: key is not valid UTF-8", ErrInvalidKey))
		}

		value, err := d.decodeValue()
		if err != nil {
			return nil, err
		}

		result[string(key)] = value
	}

	d.advance() // skip 'e'
	return result, nil
}

func (d *BencodeDecoder) skipDigits() int {
	n := 0
	for d.pos < len(d.data) && isDigit(d.data[d.pos]) {
		d.pos++
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Decode decodes a single bencoded value of any kind.
func Decode(data []byte) (Value, error) {
	return NewDecoder(data).Decode()
}

// DecodeDict decodes a metainfo document: exactly one dictionary. Bytes
// after the closing 'e' are ignored.
func DecodeDict(data []byte) (Dict, error) {
	d := NewDecoder(data)

	c, err := d.peek()
	if err != nil {
		return nil, err
	}
	if c != 'd' {
		return nil, d.errorAt(0, fmt.Errorf("%w: starts with %q", ErrNotDictionary, c))
	}

	return d.decodeDict()
}
