package processors

import (
	"encoding/json"
	"math"

	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/pkg/errors"
)

/* Scales a waveform so that its absolute peak hits a target value.
   Silence (all zero) is passed through untouched. A positive
   TargetLength additionally pads with zeros or truncates afterwards. */
type PeakNormalize struct {
	TargetPeak   float64 `json:"targetPeak"`
	TargetLength int     `json:"targetLength"`
}

func NewPeakNormalize(targetPeak float64) (*PeakNormalize, error) {
	normalize := PeakNormalize{TargetPeak: targetPeak}
	if err := normalize.validate(); err != nil {
		return nil, err
	}
	return &normalize, nil
}

func PeakNormalizeFromOptions(options json.RawMessage) (*PeakNormalize, error) {
	normalize := PeakNormalize{TargetPeak: 1.0}
	if err := parseOptions(options, &normalize); err != nil {
		return nil, err
	}
	if err := normalize.validate(); err != nil {
		return nil, err
	}
	return &normalize, nil
}

func (n *PeakNormalize) validate() error {
	if n.TargetPeak <= 0 {
		return errors.Wrap(serving.LoadFailedError, "normalize needs a positive targetPeak")
	}
	if n.TargetLength < 0 {
		return errors.Wrap(serving.LoadFailedError, "normalize needs a non-negative targetLength")
	}
	return nil
}

func (n *PeakNormalize) Process(wave []float64) ([]float64, error) {
	peak := 0.0
	for _, sample := range wave {
		if abs := math.Abs(sample); abs > peak {
			peak = abs
		}
	}
	result := make([]float64, len(wave))
	if peak == 0 {
		copy(result, wave)
	} else {
		factor := n.TargetPeak / peak
		for i, sample := range wave {
			result[i] = sample * factor
		}
	}
	if n.TargetLength > 0 && len(result) != n.TargetLength {
		fitted := make([]float64, n.TargetLength)
		copy(fitted, result)
		return fitted, nil
	}
	return result, nil
}

func (n *PeakNormalize) Cleanup() {
	// nothing held
}
