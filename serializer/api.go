package serializer

import (
	"bufio"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
	"io"
)

type BackendType = int

const BACKEND_MSGPACK BackendType = 1
const BACKEND_JSON BackendType = 2

const MimeJson = "application/json"
const MimeMsgPack = "application/x-msgpack"

// Returns the backend type serving a content type.
func BackendTypeForContentType(contentType string) (BackendType, error) {
	switch contentType {
	case MimeJson:
		return BACKEND_JSON, nil
	case MimeMsgPack:
		return BACKEND_MSGPACK, nil
	default:
		return 0, errors.Errorf("unsupported content type %s", contentType)
	}
}

func CreateSerializingBackend(backendType BackendType, destination io.Writer) (SerializingBackend, error) {
	switch backendType {
	case BACKEND_MSGPACK:
		return &msgPackSerializingBackend{msgpack.NewEncoder(destination)}, nil
	case BACKEND_JSON:
		return &jsonSerializer{destination: destination}, nil
	default:
		return nil, errors.Errorf("unsupported backend %d", backendType)
	}
}

func CreateDeserializingBackend(backendType BackendType, reader io.Reader) (DeserializingBackend, error) {
	switch backendType {
	case BACKEND_MSGPACK:
		return &msgPackDeserializingBackend{msgpack.NewDecoder(reader)}, nil
	case BACKEND_JSON:
		return newJsonDeserializer(bufio.NewReader(reader)), nil
	default:
		return nil, errors.Errorf("unsupported backend %d", backendType)
	}
}

// Serializing backend for the primitive values crossing the model boundary.
// The interface is compatible to vmihailenco/msgpack, a JSON implementation
// exists for debugging and plain HTTP clients.

type SerializingBackend interface {
	EncodeArrayLen(l int) error
	// Encodes a value via its JSON representation (e.g. headers)
	EncodeJson(i interface{}) error
	// Methods are like in msgpack.Encoder
	EncodeInt64(v int64) error
	EncodeString(s string) error
	EncodeFloat64(f float64) error
	EncodeBool(b bool) error
	EncodeNil() error
	Flush() error
}

type DeserializingBackend interface {
	DecodeArrayLen() (int, error)
	DecodeJson(destination interface{}) error
	DecodeInt64() (int64, error)
	DecodeString() (string, error)
	DecodeFloat64() (float64, error)
	DecodeBool() (bool, error)
	DecodeNil() error
}
