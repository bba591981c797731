package serializer

import (
	"bytes"
	"encoding/json"
	"github.com/pkg/errors"
	"io"
)

// Reads the element stream from plain JSON. Array lengths must be known
// before their elements are handed out, so a whole JSON value is tokenized
// into a flat element list first, lengths computed along the way.
// Top level values may follow each other (concatenated documents).

type jsonElementType int

const (
	jsonString jsonElementType = iota
	jsonNumber
	jsonBool
	jsonNull
	// value carries the element count
	jsonArray
	// value carries the entry count
	jsonObject
)

type jsonElement struct {
	elementType jsonElementType
	value       interface{}
}

type jsonDeserializer struct {
	decoder *json.Decoder
	pending []jsonElement
	pos     int
}

func newJsonDeserializer(reader io.Reader) *jsonDeserializer {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	return &jsonDeserializer{decoder: decoder}
}

func (j *jsonDeserializer) nextElement() (jsonElement, error) {
	if j.pos >= len(j.pending) {
		j.pending = j.pending[:0]
		j.pos = 0
		if err := j.tokenizeValue(); err != nil {
			return jsonElement{}, err
		}
	}
	result := j.pending[j.pos]
	j.pos += 1
	return result, nil
}

// Tokenizes one complete JSON value into the pending list.
func (j *jsonDeserializer) tokenizeValue() error {
	t, err := j.decoder.Token()
	if err != nil {
		return err
	}
	return j.tokenizeFromToken(t)
}

func (j *jsonDeserializer) tokenizeFromToken(t json.Token) error {
	switch v := t.(type) {
	case json.Delim:
		switch v {
		case '[':
			idx := len(j.pending)
			j.pending = append(j.pending, jsonElement{jsonArray, 0})
			count := 0
			for j.decoder.More() {
				if err := j.tokenizeValue(); err != nil {
					return unexpectedEof(err)
				}
				count += 1
			}
			if _, err := j.decoder.Token(); err != nil {
				return unexpectedEof(err)
			}
			j.pending[idx].value = count
			return nil
		case '{':
			idx := len(j.pending)
			j.pending = append(j.pending, jsonElement{jsonObject, 0})
			count := 0
			for j.decoder.More() {
				key, err := j.decoder.Token()
				if err != nil {
					return unexpectedEof(err)
				}
				keyString, isString := key.(string)
				if !isString {
					return errors.New("expected map key")
				}
				j.pending = append(j.pending, jsonElement{jsonString, keyString})
				if err := j.tokenizeValue(); err != nil {
					return unexpectedEof(err)
				}
				count += 1
			}
			if _, err := j.decoder.Token(); err != nil {
				return unexpectedEof(err)
			}
			j.pending[idx].value = count
			return nil
		}
		return errors.Errorf("unexpected %s", v.String())
	case string:
		j.pending = append(j.pending, jsonElement{jsonString, v})
	case json.Number:
		j.pending = append(j.pending, jsonElement{jsonNumber, v})
	case bool:
		j.pending = append(j.pending, jsonElement{jsonBool, v})
	default:
		if v == nil {
			j.pending = append(j.pending, jsonElement{jsonNull, nil})
			return nil
		}
		return errors.Errorf("unexpected token %v", t)
	}
	return nil
}

func unexpectedEof(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (j *jsonDeserializer) DecodeArrayLen() (int, error) {
	e, err := j.nextElement()
	if err != nil {
		return 0, err
	}
	if e.elementType != jsonArray {
		return 0, errors.New("no array type")
	}
	return e.value.(int), nil
}

func (j *jsonDeserializer) DecodeJson(destination interface{}) error {
	// re-serialize the elements into plain JSON
	buf := bytes.Buffer{}
	if err := j.decodePlainJson(&buf); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), destination)
}

func (j *jsonDeserializer) decodePlainJson(buf *bytes.Buffer) error {
	e, err := j.nextElement()
	if err != nil {
		return err
	}
	switch e.elementType {
	case jsonArray:
		length := e.value.(int)
		if err := buf.WriteByte('['); err != nil {
			return err
		}
		for i := 0; i < length; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := j.decodePlainJson(buf); err != nil {
				return err
			}
		}
		return buf.WriteByte(']')
	case jsonObject:
		length := e.value.(int)
		if err := buf.WriteByte('{'); err != nil {
			return err
		}
		for i := 0; i < length; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := j.decodePlainJson(buf); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := j.decodePlainJson(buf); err != nil {
				return err
			}
		}
		return buf.WriteByte('}')
	case jsonString:
		encoded, err := json.Marshal(e.value.(string))
		if err != nil {
			return err
		}
		_, err = buf.Write(encoded)
		return err
	case jsonNumber:
		_, err := buf.WriteString(e.value.(json.Number).String())
		return err
	case jsonBool:
		if e.value.(bool) {
			_, err := buf.WriteString("true")
			return err
		}
		_, err := buf.WriteString("false")
		return err
	case jsonNull:
		_, err := buf.WriteString("null")
		return err
	}
	return errors.Errorf("unsupported type %d", e.elementType)
}

func (j *jsonDeserializer) DecodeInt64() (int64, error) {
	e, err := j.nextElement()
	if err != nil {
		return 0, err
	}
	if e.elementType != jsonNumber {
		return 0, errors.New("no number type")
	}
	return e.value.(json.Number).Int64()
}

func (j *jsonDeserializer) DecodeString() (string, error) {
	e, err := j.nextElement()
	if err != nil {
		return "", err
	}
	if e.elementType != jsonString {
		return "", errors.New("no string type")
	}
	return e.value.(string), nil
}

func (j *jsonDeserializer) DecodeFloat64() (float64, error) {
	e, err := j.nextElement()
	if err != nil {
		return 0, err
	}
	if e.elementType != jsonNumber {
		return 0, errors.New("no number type")
	}
	return e.value.(json.Number).Float64()
}

func (j *jsonDeserializer) DecodeBool() (bool, error) {
	e, err := j.nextElement()
	if err != nil {
		return false, err
	}
	if e.elementType != jsonBool {
		return false, errors.New("no bool type")
	}
	return e.value.(bool), nil
}

func (j *jsonDeserializer) DecodeNil() error {
	e, err := j.nextElement()
	if err != nil {
		return err
	}
	if e.elementType != jsonNull {
		return errors.New("no null type")
	}
	return nil
}
