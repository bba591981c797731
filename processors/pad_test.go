package processors

import (
	"encoding/json"
	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPad(t *testing.T) {
	pad, err := NewPad(5, 0.0)
	assert.NoError(t, err)
	result, err := pad.Process([]float64{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 0, 0}, result)
}

func TestPadValue(t *testing.T) {
	pad, err := NewPad(4, -1.0)
	assert.NoError(t, err)
	result, err := pad.Process([]float64{1})
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, -1, -1, -1}, result)
}

func TestPadTruncates(t *testing.T) {
	pad, err := NewPad(2, 0.0)
	assert.NoError(t, err)
	result, err := pad.Process([]float64{1, 2, 3, 4})
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, result)
}

func TestPadExactLength(t *testing.T) {
	pad, err := NewPad(3, 0.0)
	assert.NoError(t, err)
	result, err := pad.Process([]float64{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, result)
}

func TestPadIdempotent(t *testing.T) {
	pad, err := NewPad(4, -1.0)
	assert.NoError(t, err)
	once, err := pad.Process([]float64{1, 2})
	assert.NoError(t, err)
	twice, err := pad.Process(once)
	assert.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestPadFromOptions(t *testing.T) {
	pad, err := PadFromOptions(json.RawMessage(`{"targetLength": 4, "value": 0.5}`))
	assert.NoError(t, err)
	assert.Equal(t, 4, pad.TargetLength)
	assert.Equal(t, 0.5, pad.Value)
}

func TestPadValidation(t *testing.T) {
	_, err := NewPad(0, 0.0)
	assert.True(t, serving.IsLoadFailure(err))

	_, err = PadFromOptions(nil)
	assert.True(t, serving.IsLoadFailure(err))

	_, err = PadFromOptions(json.RawMessage(`{"targetLength": "many"}`))
	assert.True(t, serving.IsLoadFailure(err))
}
