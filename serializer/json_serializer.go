package serializer

import (
	"encoding/json"
	"io"
)

// Writes the same element stream as the msgpack backend as plain JSON.
// Since array lengths are announced up front, a stack of pending element
// counts is enough to place the punctuation.
type jsonSerializer struct {
	destination io.Writer
	// Number of pending elements per open array
	stack []int
}

func (j *jsonSerializer) write(data []byte) error {
	_, err := j.destination.Write(data)
	return err
}

// Writes a finished element and closes arrays which became complete.
func (j *jsonSerializer) push(data []byte) error {
	if err := j.write(data); err != nil {
		return err
	}
	return j.afterElement()
}

func (j *jsonSerializer) afterElement() error {
	if len(j.stack) == 0 {
		return nil
	}
	top := len(j.stack) - 1
	j.stack[top] -= 1
	if j.stack[top] > 0 {
		return j.write([]byte(","))
	}
	if err := j.write([]byte("]")); err != nil {
		return err
	}
	j.stack = j.stack[:top]
	return j.afterElement()
}

func (j *jsonSerializer) EncodeArrayLen(l int) error {
	if l == 0 {
		return j.push([]byte("[]"))
	}
	j.stack = append(j.stack, l)
	return j.write([]byte("["))
}

func (j *jsonSerializer) EncodeJson(i interface{}) error {
	encoded, err := json.Marshal(i)
	if err != nil {
		return err
	}
	return j.push(encoded)
}

func (j *jsonSerializer) EncodeInt64(v int64) error {
	return j.EncodeJson(v)
}

func (j *jsonSerializer) EncodeString(s string) error {
	return j.EncodeJson(s)
}

func (j *jsonSerializer) EncodeFloat64(f float64) error {
	return j.EncodeJson(f)
}

func (j *jsonSerializer) EncodeBool(b bool) error {
	return j.EncodeJson(b)
}

func (j *jsonSerializer) EncodeNil() error {
	return j.EncodeJson(nil)
}

func (j *jsonSerializer) Flush() error {
	// Nothing todo
	return nil
}
