// Package engine turns JSON text into a token stream, enforces structural
// limits on that stream and folds it into an untyped value tree.
package engine

import (
	"encoding/json"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token is one lexical element of the input with an approximate byte offset
// (-1 when the driver cannot report one).
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is the minimal interface consumed by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// DecodeAny builds an untyped tree (map[string]any, []any, string,
// json.Number, bool, nil) from the token stream. Numbers stay textual so the
// schema layer decides between integer and float semantics.
func DecodeAny(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(src, tok)
	if err != nil {
		return nil, err
	}
	// Trailing data after the root value is malformed input.
	if extra, err := src.NextToken(); err == nil {
		return nil, &SyntaxError{Offset: extra.Offset, Msg: "unexpected data after top-level value"}
	} else if err != io.EOF {
		return nil, err
	}
	return v, nil
}

// SyntaxError reports malformed token sequences.
type SyntaxError struct {
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string { return e.Msg }

func decodeValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, &SyntaxError{Offset: tok.Offset, Msg: "expected object key"}
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		// Last occurrence wins, matching encoding/json; the enforcement
		// wrapper reports duplicates before we get here.
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
