package engine

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type goJSONSource struct {
	dec   *j.Decoder
	stack []frame
	last  int64
}

// NewReader wraps an io.Reader into a TokenSource backed by goccy/go-json.
func NewReader(r io.Reader) TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &goJSONSource{dec: dec, last: -1}
}

// NewBytes wraps a byte slice into a TokenSource backed by goccy/go-json.
func NewBytes(b []byte) TokenSource { return NewReader(bytes.NewReader(b)) }

// valueDone flips the enclosing object back to key position after a value.
func (s *goJSONSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *goJSONSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return Token{}, err
	}
	s.last = s.dec.InputOffset()

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return Token{Kind: KindBeginObject, Offset: s.last}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return Token{Kind: KindBeginArray, Offset: s.last}, nil
		case '}', ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.valueDone()
			if v == '}' {
				return Token{Kind: KindEndObject, Offset: s.last}, nil
			}
			return Token{Kind: KindEndArray, Offset: s.last}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return Token{Kind: KindKey, String: v, Offset: s.last}, nil
			}
		}
		s.valueDone()
		return Token{Kind: KindString, String: v, Offset: s.last}, nil
	case bool:
		s.valueDone()
		return Token{Kind: KindBool, Bool: v, Offset: s.last}, nil
	case j.Number:
		s.valueDone()
		return Token{Kind: KindNumber, Number: string(v), Offset: s.last}, nil
	case float64:
		s.valueDone()
		return Token{Kind: KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: s.last}, nil
	}
	s.valueDone()
	return Token{Kind: KindNull, Offset: s.last}, nil
}

func (s *goJSONSource) Location() int64 { return s.last }
