package processors

import (
	"encoding/json"
	"math"

	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/pkg/errors"
)

/* Linear resampling between two sample rates. Good enough to adapt
   recordings to the rate a model was trained with. */
type Resample struct {
	FromRate int `json:"fromRate"`
	ToRate   int `json:"toRate"`
}

func NewResample(fromRate int, toRate int) (*Resample, error) {
	resample := Resample{FromRate: fromRate, ToRate: toRate}
	if err := resample.validate(); err != nil {
		return nil, err
	}
	return &resample, nil
}

func ResampleFromOptions(options json.RawMessage) (*Resample, error) {
	resample := Resample{ToRate: serving.DefaultSampleRate}
	if err := parseOptions(options, &resample); err != nil {
		return nil, err
	}
	if err := resample.validate(); err != nil {
		return nil, err
	}
	return &resample, nil
}

func (r *Resample) validate() error {
	if r.FromRate <= 0 || r.ToRate <= 0 {
		return errors.Wrap(serving.LoadFailedError, "resample needs positive rates")
	}
	return nil
}

func (r *Resample) Process(wave []float64) ([]float64, error) {
	if r.FromRate == r.ToRate || len(wave) == 0 {
		result := make([]float64, len(wave))
		copy(result, wave)
		return result, nil
	}
	outLen := int(math.Round(float64(len(wave)) * float64(r.ToRate) / float64(r.FromRate)))
	if outLen < 1 {
		outLen = 1
	}
	result := make([]float64, outLen)
	step := float64(r.FromRate) / float64(r.ToRate)
	for i := range result {
		pos := float64(i) * step
		left := int(pos)
		if left >= len(wave)-1 {
			result[i] = wave[len(wave)-1]
			continue
		}
		frac := pos - float64(left)
		result[i] = wave[left]*(1-frac) + wave[left+1]*frac
	}
	return result, nil
}

func (r *Resample) Cleanup() {
	// nothing held
}
