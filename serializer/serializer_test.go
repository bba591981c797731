package serializer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendTypeForContentType(t *testing.T) {
	backendType, err := BackendTypeForContentType(MimeJson)
	assert.NoError(t, err)
	assert.Equal(t, BACKEND_JSON, backendType)

	backendType, err = BackendTypeForContentType(MimeMsgPack)
	assert.NoError(t, err)
	assert.Equal(t, BACKEND_MSGPACK, backendType)

	_, err = BackendTypeForContentType("text/plain")
	assert.Error(t, err)
}

func TestJsonSerializerStream(t *testing.T) {
	buf := bytes.Buffer{}
	backend, err := CreateSerializingBackend(BACKEND_JSON, &buf)
	assert.NoError(t, err)
	assert.NoError(t, backend.EncodeArrayLen(4))
	assert.NoError(t, backend.EncodeString("a"))
	assert.NoError(t, backend.EncodeInt64(1))
	assert.NoError(t, backend.EncodeBool(true))
	assert.NoError(t, backend.EncodeNil())
	assert.NoError(t, backend.Flush())
	assert.Equal(t, `["a",1,true,null]`, buf.String())
}

func TestJsonSerializerNested(t *testing.T) {
	buf := bytes.Buffer{}
	backend, err := CreateSerializingBackend(BACKEND_JSON, &buf)
	assert.NoError(t, err)
	assert.NoError(t, backend.EncodeArrayLen(2))
	assert.NoError(t, backend.EncodeArrayLen(2))
	assert.NoError(t, backend.EncodeFloat64(0.5))
	assert.NoError(t, backend.EncodeFloat64(1.5))
	assert.NoError(t, backend.EncodeArrayLen(0))
	assert.Equal(t, `[[0.5,1.5],[]]`, buf.String())
}

func TestJsonDeserializerStream(t *testing.T) {
	backend, err := CreateDeserializingBackend(BACKEND_JSON, bytes.NewReader([]byte(`["a",1,true,null,0.5]`)))
	assert.NoError(t, err)
	length, err := backend.DecodeArrayLen()
	assert.NoError(t, err)
	assert.Equal(t, 5, length)
	s, err := backend.DecodeString()
	assert.NoError(t, err)
	assert.Equal(t, "a", s)
	i, err := backend.DecodeInt64()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), i)
	b, err := backend.DecodeBool()
	assert.NoError(t, err)
	assert.True(t, b)
	assert.NoError(t, backend.DecodeNil())
	f, err := backend.DecodeFloat64()
	assert.NoError(t, err)
	assert.Equal(t, 0.5, f)
}

func TestJsonDeserializerTypeErrors(t *testing.T) {
	backend, err := CreateDeserializingBackend(BACKEND_JSON, bytes.NewReader([]byte(`"a"`)))
	assert.NoError(t, err)
	_, err = backend.DecodeArrayLen()
	assert.Error(t, err)

	backend, err = CreateDeserializingBackend(BACKEND_JSON, bytes.NewReader([]byte(`[1]`)))
	assert.NoError(t, err)
	_, err = backend.DecodeString()
	assert.Error(t, err)
}

func TestJsonDeserializerConcatenated(t *testing.T) {
	backend, err := CreateDeserializingBackend(BACKEND_JSON, bytes.NewReader([]byte(`{"a":1}[2]`)))
	assert.NoError(t, err)
	var header map[string]interface{}
	assert.NoError(t, backend.DecodeJson(&header))
	assert.Equal(t, map[string]interface{}{"a": 1.0}, header)
	length, err := backend.DecodeArrayLen()
	assert.NoError(t, err)
	assert.Equal(t, 1, length)
	i, err := backend.DecodeInt64()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), i)
}

type transcodeSample struct {
	Name    string                 `json:"name"`
	Rate    int                    `json:"rate"`
	Ratio   float64                `json:"ratio"`
	Active  bool                   `json:"active"`
	Nothing interface{}            `json:"nothing"`
	Values  []float64              `json:"values"`
	Extra   map[string]interface{} `json:"extra"`
}

func TestMsgPackJsonTranscode(t *testing.T) {
	sample := transcodeSample{
		Name:   "kws",
		Rate:   16000,
		Ratio:  0.5,
		Active: true,
		Values: []float64{0.25, -0.25},
		Extra:  map[string]interface{}{"note": "x"},
	}
	buf := bytes.Buffer{}
	backend, err := CreateSerializingBackend(BACKEND_MSGPACK, &buf)
	assert.NoError(t, err)
	assert.NoError(t, backend.EncodeJson(&sample))

	deserializer, err := CreateDeserializingBackend(BACKEND_MSGPACK, bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	var decoded transcodeSample
	assert.NoError(t, deserializer.DecodeJson(&decoded))
	assert.Equal(t, sample, decoded)
}

func TestMsgPackJsonValues(t *testing.T) {
	buf := bytes.Buffer{}
	backend, err := CreateSerializingBackend(BACKEND_MSGPACK, &buf)
	assert.NoError(t, err)
	assert.NoError(t, backend.EncodeJson(map[string]interface{}{"a": []interface{}{1.0, nil, false}}))

	deserializer, err := CreateDeserializingBackend(BACKEND_MSGPACK, bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	var decoded map[string]interface{}
	assert.NoError(t, deserializer.DecodeJson(&decoded))
	assert.Equal(t, map[string]interface{}{"a": []interface{}{1.0, nil, false}}, decoded)
}
