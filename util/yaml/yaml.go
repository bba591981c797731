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
package yaml

import (
	"bytes"
	"encoding/json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Custom YAML support on top of yaml.v3, routing everything through JSON.
// Configuration files are written in YAML but all structs in this module
// carry JSON tags only, so YAML is first translated into JSON and then
// handled by the standard Go JSON facilities. Element order in mappings
// is preserved.

// Unmarshal yaml by converting to JSON and using the regular go JSON facilities
func Unmarshal(data []byte, value interface{}) error {
	jsonCode, err := YamlToJson(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonCode, value)
}

// Marshal to yaml by converting to JSON first and then converting to YAML
func Marshal(value interface{}) ([]byte, error) {
	jsonCode, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return JsonToYaml(jsonCode)
}

// Convert YAML to JSON while preserving the order in maps.
func YamlToJson(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return []byte("null"), nil
	}
	emitter := jsonEmitter{}
	if err := emitter.emit(node.Content[0]); err != nil {
		return nil, err
	}
	return emitter.buffer.Bytes(), nil
}

var stringAsKeyError = errors.New("JSON only supports strings as keys")

type jsonEmitter struct {
	buffer bytes.Buffer
}

func (e *jsonEmitter) emit(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return e.emitScalar(node)
	case yaml.SequenceNode:
		e.buffer.WriteByte('[')
		for i, c := range node.Content {
			if i > 0 {
				e.buffer.WriteByte(',')
			}
			if err := e.emit(c); err != nil {
				return err
			}
		}
		e.buffer.WriteByte(']')
	case yaml.MappingNode:
		e.buffer.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			value := node.Content[i+1]
			if i > 0 {
				e.buffer.WriteByte(',')
			}
			if key.Tag != "!!str" {
				return stringAsKeyError
			}
			if err := e.emitScalar(key); err != nil {
				return err
			}
			e.buffer.WriteByte(':')
			if err := e.emit(value); err != nil {
				return err
			}
		}
		e.buffer.WriteByte('}')
	case yaml.AliasNode:
		return e.emit(node.Alias)
	case yaml.DocumentNode:
		if len(node.Content) != 1 {
			return errors.New("expected a single document")
		}
		return e.emit(node.Content[0])
	}
	return nil
}

func (e *jsonEmitter) emitScalar(node *yaml.Node) error {
	switch node.Tag {
	case "!!null":
		e.buffer.WriteString("null")
	case "!!bool", "!!int", "!!float":
		// decode and re-encode, yaml allows non-JSON spellings (True, 0x1f)
		var value interface{}
		if err := node.Decode(&value); err != nil {
			return err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		e.buffer.Write(encoded)
	default:
		// strings and everything else (e.g. timestamps) are emitted quoted
		encoded, err := json.Marshal(node.Value)
		if err != nil {
			return err
		}
		e.buffer.Write(encoded)
	}
	return nil
}

// Converts JSON to YAML
func JsonToYaml(data []byte) ([]byte, error) {
	var node yaml.Node
	err := yaml.Unmarshal(data, &node)
	if err != nil {
		return nil, err
	}
	fixStyle(&node)
	if len(node.Content) == 0 {
		return []byte("null"), nil
	}
	return yaml.Marshal(node.Content[0])
}

func fixStyle(node *yaml.Node) {
	if node.Kind == yaml.MappingNode || node.Kind == yaml.SequenceNode {
		node.Style = yaml.LiteralStyle
	}
	if node.Kind == yaml.ScalarNode {
		node.Style = yaml.FlowStyle
	}
	for _, c := range node.Content {
		fixStyle(c)
	}
}
