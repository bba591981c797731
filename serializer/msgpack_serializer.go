package serializer

import (
	"encoding/json"
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

type msgPackSerializingBackend struct {
	*msgpack.Encoder
}

func (m *msgPackSerializingBackend) EncodeJson(i interface{}) error {
	// We want the JSON Marshalling to use the regular MarshalJSON Routines
	// Thats why we convert to JSON and transcode to MsgPack afterwards
	// If we directly encode it via m.Encode(i) we get a different encoding
	bytes, err := json.Marshal(i)
	if err != nil {
		return err
	}
	return m.EncodeRawJson(bytes)
}

// Transcodes a raw JSON value into MsgPack.
func (m *msgPackSerializingBackend) EncodeRawJson(jsonBytes []byte) error {
	value, dataType, _, err := jsonparser.Get(jsonBytes)
	if err != nil {
		return err
	}
	return m.encodeJsonWithType(value, dataType)
}

func (m *msgPackSerializingBackend) encodeJsonWithType(value []byte, dataType jsonparser.ValueType) error {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return err
		}
		return m.EncodeString(s)
	case jsonparser.Object:
		count := 0
		counter := func([]byte, []byte, jsonparser.ValueType, int) error {
			count += 1
			return nil
		}
		if err := jsonparser.ObjectEach(value, counter); err != nil {
			return err
		}
		if err := m.EncodeMapLen(count); err != nil {
			return err
		}
		subWriter := func(key []byte, value []byte, valueType jsonparser.ValueType, offset int) error {
			// key is always string
			if err := m.EncodeString((string)(key)); err != nil {
				return err
			}
			return m.encodeJsonWithType(value, valueType)
		}
		return jsonparser.ObjectEach(value, subWriter)
	case jsonparser.Number:
		i, err := jsonparser.GetInt(value)
		if err == nil {
			return m.EncodeInt(i)
		}
		f, err := jsonparser.GetFloat(value)
		if err != nil {
			return err
		}
		return m.EncodeFloat64(f)
	case jsonparser.Null:
		return m.EncodeNil()
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return err
		}
		return m.EncodeBool(b)
	case jsonparser.Array:
		count := 0
		counter := func([]byte, jsonparser.ValueType, int, error) {
			count += 1
		}
		if _, err := jsonparser.ArrayEach(value, counter); err != nil {
			return err
		}
		if err := m.EncodeArrayLen(count); err != nil {
			return err
		}
		var subError error
		subWriter := func(value []byte, valueType jsonparser.ValueType, offset int, e error) {
			if err := m.encodeJsonWithType(value, valueType); err != nil && subError == nil {
				subError = err
			}
		}
		if _, err := jsonparser.ArrayEach(value, subWriter); err != nil {
			return err
		}
		return subError
	}
	return errors.Errorf("unimplemented sub type %d", dataType)
}

func (m *msgPackSerializingBackend) Flush() error {
	// Nothing
	return nil
}
