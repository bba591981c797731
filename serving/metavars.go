/*
 * This file is part of the Mantik Project.
 * Copyright (c) 2020-2021 Mantik UG (Haftungsbeschränkt)
 * Authors: See AUTHORS file
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License version 3.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.
 *
 * Additionally, the following linking exception is granted:
 *
 * If you modify this Program, or any covered work, by linking or
 * combining it with other code, such other code is not for that reason
 * alone subject to any of the requirements of the GNU Affero GPL
 * version 3.
 *
 * You can be released from the requirements of the license by purchasing
 * a commercial license.
 */
package serving

import (
	"bytes"
	"encoding/json"
	"github.com/arthur-project/arthur-model-contracts/util/yaml"
	"github.com/pkg/errors"
	"io"
	"strings"
)

// Meta variables of deployment configurations.
// A block "metaVariables" declares single values, which can be referenced
// by "${metaVariableName}" everywhere else in the document. A leading "$$"
// escapes a literal dollar string. The metaVariables block itself is not
// interpolated.

// A single meta variable. Only single values are allowed (string, number,
// bool, null), no arrays or objects.
type MetaVariable struct {
	Name string `json:"name"`
	// Fixed variables may not be overridden when bundling a package.
	Fix   bool `json:"fix"`
	Value interface{}
	// Serialized JSON value
	JsonValue []byte
}

func (m *MetaVariable) UnmarshalJSON(data []byte) error {
	var header struct {
		Name  string          `json:"name"`
		Fix   bool            `json:"fix"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}
	if len(header.Value) == 0 {
		return errors.Errorf("meta variable %s needs a value", header.Name)
	}
	var value interface{}
	if err := json.Unmarshal(header.Value, &value); err != nil {
		return err
	}
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		return errors.New("meta variables may only contain single values")
	}
	compacted := bytes.Buffer{}
	if err := json.Compact(&compacted, header.Value); err != nil {
		return err
	}
	m.Name = header.Name
	m.Fix = header.Fix
	m.Value = value
	m.JsonValue = compacted.Bytes()
	return nil
}

// A list of meta variables.
type MetaVariables []MetaVariable

// Finds a meta variable by name or returns nil.
func (m MetaVariables) GetByName(name string) *MetaVariable {
	for _, v := range m {
		if v.Name == name {
			return &v
		}
	}
	return nil
}

// Helper for fishing the meta variable block out of a document.
type metaVariablesHeader struct {
	MetaVariables MetaVariables `json:"metaVariables"`
}

/** Applies meta variable interpolation to a JSON document. Returns JSON or an error. */
func DecodeMetaJson(data []byte) ([]byte, error) {
	var header metaVariablesHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, err
	}
	interpolator := metaInterpolator{
		meta:    header.MetaVariables,
		decoder: json.NewDecoder(bytes.NewReader(data)),
	}
	interpolator.decoder.UseNumber()
	if err := interpolator.value(0, false); err != nil {
		return nil, err
	}
	return interpolator.result.Bytes(), nil
}

// Rewrites a JSON token stream, replacing meta variable references.
// depth counts object/array nesting, ignore disables interpolation
// inside the metaVariables block.
type metaInterpolator struct {
	meta    MetaVariables
	decoder *json.Decoder
	result  bytes.Buffer
}

func (mi *metaInterpolator) value(depth int, ignore bool) error {
	t, err := mi.decoder.Token()
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	if err != nil {
		return err
	}
	return mi.valueFromToken(t, depth, ignore)
}

func (mi *metaInterpolator) valueFromToken(token json.Token, depth int, ignore bool) error {
	switch v := token.(type) {
	case json.Delim:
		switch v {
		case '[':
			return mi.array(depth+1, ignore)
		case '{':
			return mi.object(depth+1, ignore)
		default:
			return errors.Errorf("unexpected %s", v.String())
		}
	case bool:
		return mi.writeEncoded(v)
	case json.Number:
		mi.result.WriteString(v.String())
		return nil
	case float64:
		return mi.writeEncoded(v)
	case string:
		return mi.stringValue(v, ignore)
	default:
		if v == nil {
			mi.result.WriteString("null")
			return nil
		}
		return errors.Errorf("unexpected token %v", token)
	}
}

func (mi *metaInterpolator) array(depth int, ignore bool) error {
	mi.result.WriteByte('[')
	first := true
	for {
		t, err := mi.decoder.Token()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		if delim, isDelim := t.(json.Delim); isDelim && delim == ']' {
			mi.result.WriteByte(']')
			return nil
		}
		if !first {
			mi.result.WriteByte(',')
		}
		first = false
		if err := mi.valueFromToken(t, depth, ignore); err != nil {
			return err
		}
	}
}

func (mi *metaInterpolator) object(depth int, ignore bool) error {
	mi.result.WriteByte('{')
	first := true
	for {
		t, err := mi.decoder.Token()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		if delim, isDelim := t.(json.Delim); isDelim && delim == '}' {
			mi.result.WriteByte('}')
			return nil
		}
		if !first {
			mi.result.WriteByte(',')
		}
		first = false
		key, keyIsString := t.(string)
		if !keyIsString {
			return errors.New("expected map key")
		}
		if err := mi.writeEncoded(key); err != nil {
			return err
		}
		mi.result.WriteByte(':')
		// the metaVariables block itself is not interpolated
		newIgnore := ignore || (depth == 1 && key == "metaVariables")
		if err := mi.value(depth, newIgnore); err != nil {
			return err
		}
	}
}

const metaVariablePrefix = "${"
const metaVariableSuffix = "}"

func (mi *metaInterpolator) stringValue(v string, ignore bool) error {
	if ignore {
		return mi.writeEncoded(v)
	}
	if strings.HasPrefix(v, "$$") {
		return mi.writeEncoded(strings.TrimPrefix(v, "$"))
	}
	if strings.HasPrefix(v, metaVariablePrefix) && strings.HasSuffix(v, metaVariableSuffix) {
		variableName := strings.TrimSuffix(strings.TrimPrefix(v, metaVariablePrefix), metaVariableSuffix)
		value := mi.meta.GetByName(variableName)
		if value == nil {
			return errors.Errorf("meta variable %s not found", variableName)
		}
		mi.result.Write(value.JsonValue)
		return nil
	}
	return mi.writeEncoded(v)
}

func (mi *metaInterpolator) writeEncoded(v interface{}) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	mi.result.Write(encoded)
	return nil
}

/** Applies meta variable interpolation to a YAML document. Returns JSON or an error. */
func DecodeMetaYaml(data []byte) ([]byte, error) {
	asJson, err := yaml.YamlToJson(data)
	if err != nil {
		return nil, err
	}
	return DecodeMetaJson(asJson)
}

// Unmarshals a YAML document with meta variable interpolation applied.
func UnmarshalMetaYaml(data []byte, result interface{}) error {
	asJson, err := DecodeMetaYaml(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(asJson, result)
}
