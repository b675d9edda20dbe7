package xmldom

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/jacoelho/xmldom/pkg/xmlstream"
)

const parseChunkSize = 4096

// ParseString tokenizes data and returns its first complete root element.
// Input after the first root is not consumed; use Parse to collect every
// root of a stream.
func ParseString(data string) (*Element, error) {
	parser := xmlstream.NewParser()
	builder := NewBuilder()
	parser.Feed(data)
	for {
		ev, err := parser.Next()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoElement
		}
		if err != nil {
			return nil, err
		}
		elem, err := builder.HandleEvent(ev)
		if err != nil {
			return nil, err
		}
		if elem != nil {
			return elem, nil
		}
	}
}

// Parse reads r in chunks, feeds the tokenizer incrementally and returns
// every completed root element in document order. It returns ErrNoElement
// when the input holds no element at all.
func Parse(r io.Reader) ([]*Element, error) {
	parser := xmlstream.NewParser()
	builder := NewBuilder()
	var roots []*Element

	drained := func() error {
		for {
			ev, err := parser.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			elem, err := builder.HandleEvent(ev)
			if err != nil {
				return err
			}
			if elem != nil {
				roots = append(roots, elem)
			}
		}
	}

	buf := make([]byte, parseChunkSize)
	var carry []byte
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			data := append(carry, buf[:n]...)
			cut := completeRunes(data)
			parser.Feed(string(data[:cut]))
			carry = append(carry[:0], data[cut:]...)
			if err := drained(); err != nil {
				return nil, err
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, readErr
		}
	}
	if len(carry) > 0 {
		parser.Feed(string(carry))
		if err := drained(); err != nil {
			return nil, err
		}
	}

	if len(roots) == 0 {
		return nil, ErrNoElement
	}
	return roots, nil
}

// completeRunes returns the length of the longest prefix of data that ends
// on a rune boundary, so chunked reads never split a multi-byte sequence.
func completeRunes(data []byte) int {
	end := len(data)
	for i := 1; i <= utf8.UTFMax && i <= end; i++ {
		b := data[end-i]
		if utf8.RuneStart(b) {
			if utf8.FullRune(data[end-i:]) {
				return end
			}
			return end - i
		}
	}
	return end
}
