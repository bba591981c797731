package processors

import (
	"encoding/json"

	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/pkg/errors"
)

/* Brings a waveform to a fixed length, padding with a constant value
   or truncating the end. */
type Pad struct {
	TargetLength int     `json:"targetLength"`
	Value        float64 `json:"value"`
}

func NewPad(targetLength int, value float64) (*Pad, error) {
	pad := Pad{TargetLength: targetLength, Value: value}
	if err := pad.validate(); err != nil {
		return nil, err
	}
	return &pad, nil
}

func PadFromOptions(options json.RawMessage) (*Pad, error) {
	var pad Pad
	if err := parseOptions(options, &pad); err != nil {
		return nil, err
	}
	if err := pad.validate(); err != nil {
		return nil, err
	}
	return &pad, nil
}

func (p *Pad) validate() error {
	if p.TargetLength <= 0 {
		return errors.Wrap(serving.LoadFailedError, "pad needs a positive targetLength")
	}
	return nil
}

func (p *Pad) Process(wave []float64) ([]float64, error) {
	result := make([]float64, p.TargetLength)
	copied := copy(result, wave)
	for i := copied; i < p.TargetLength; i++ {
		result[i] = p.Value
	}
	return result, nil
}

func (p *Pad) Cleanup() {
	// nothing held
}
