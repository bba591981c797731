package yaml

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"testing"
)

var jsonSamples = []string{
	`true`, `false`, `null`, `1`, `0`, `[1,2,3,4]`, `[]`, `{}`, `{"hello":"world"}`, `{"z":1,"y":2,"x":3}`,
	`[1,null]`,
	`{"a":1, "s":null}`,
	`{
		"a": { "b": [], "c": [1,2,{}, null]}
	}`,
}

func TestJsonYamlConversion(t *testing.T) {
	for _, sample := range jsonSamples {
		var o1 interface{}
		err := json.Unmarshal([]byte(sample), &o1)
		assert.NoError(t, err)
		yaml, err := JsonToYaml([]byte(sample))
		assert.NoError(t, err)
		jsonAgain, err := YamlToJson(yaml)
		assert.NoError(t, err)
		var o2 interface{}
		err = json.Unmarshal(jsonAgain, &o2)
		assert.NoError(t, err)
		assert.Equal(t, o1, o2)
	}
}

func TestOrderPreserved(t *testing.T) {
	doc := []byte(`
z: 1
y: 2
x: 3
`)
	converted, err := YamlToJson(doc)
	assert.NoError(t, err)
	assert.Equal(t, `{"z":1,"y":2,"x":3}`, string(converted))
}

func TestNonCanonicalScalars(t *testing.T) {
	doc := []byte(`
flag: True
mask: 0x1f
`)
	converted, err := YamlToJson(doc)
	assert.NoError(t, err)
	assert.Equal(t, `{"flag":true,"mask":31}`, string(converted))
}

func TestAnchors(t *testing.T) {
	doc := []byte(`
defaults: &defaults
  rate: 16000
override: *defaults
`)
	converted, err := YamlToJson(doc)
	assert.NoError(t, err)
	assert.Equal(t, `{"defaults":{"rate":16000},"override":{"rate":16000}}`, string(converted))
}

func TestMultiDoc(t *testing.T) {
	doc := []byte(`
a: b
---
a: c
`)
	// Note: this behaviour is not necessary, but should be stable
	json, err := YamlToJson(doc)
	assert.NoError(t, err)
	assert.Equal(t, `{"a":"b"}`, string(json))
}

func TestInvalidKey(t *testing.T) {
	doc := []byte(
		`1: foo`,
	)
	json, err := YamlToJson(doc)
	assert.Equal(t, stringAsKeyError, err)
	assert.Nil(t, json)
}

func TestUnmarshal(t *testing.T) {
	doc := []byte(`
name: hotword
threshold: 0.5
`)
	var parsed struct {
		Name      string  `json:"name"`
		Threshold float64 `json:"threshold"`
	}
	err := Unmarshal(doc, &parsed)
	assert.NoError(t, err)
	assert.Equal(t, "hotword", parsed.Name)
	assert.Equal(t, 0.5, parsed.Threshold)
}
