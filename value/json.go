package value

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/zouxu09/wef/errors"
)

// MarshalJSON renders the value as JSON text. Non-finite numbers have no
// JSON form and are rendered as null, matching the original boundary
// serializer.
func (v Value) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	v.writeJSON(&b)
	return []byte(b.String()), nil
}

func (v Value) writeJSON(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			b.WriteString("null")
			return
		}
		b.WriteString(formatNumber(v.num))
	case KindString:
		data, _ := json.Marshal(v.str)
		b.Write(data)
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			item.writeJSON(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				b.WriteByte(',')
			}
			key, _ := json.Marshal(m.Key)
			b.Write(key)
			b.WriteByte(':')
			m.Value.writeJSON(b)
		}
		b.WriteByte('}')
	}
}

// UnmarshalJSON parses JSON text, preserving object member order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Parse decodes JSON text into a Value. Object member order follows the
// input text.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseNext(dec)
	if err != nil {
		return Value{}, err
	}

	// Reject trailing tokens after the first value.
	if _, err := dec.Token(); err == nil {
		return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidJSON).
			Detail("unexpected data after JSON value").
			Build()
	}
	return v, nil
}

func parseNext(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidJSON).
			Detail("invalid JSON").
			Cause(err).
			Build()
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidJSON).
				Detail("invalid number %q", t.String()).
				Cause(err).
				Build()
		}
		return Number(n), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			var items []Value
			for dec.More() {
				item, err := parseNext(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidJSON).
					Detail("unterminated array").
					Cause(err).
					Build()
			}
			return Array(items...), nil
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidJSON).
						Detail("unterminated object").
						Cause(err).
						Build()
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidJSON).
						Detail("object key is not a string: %v", keyTok).
						Build()
				}
				item, err := parseNext(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Value: item})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidJSON).
					Detail("unterminated object").
					Cause(err).
					Build()
			}
			return Object(members...), nil
		}
	}
	return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidJSON).
		Detail("unexpected token %v", tok).
		Build()
}
