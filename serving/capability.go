package serving

import (
	"encoding/json"
	"sort"
)

/* Sample rate in Hz which is assumed when a caller does not state one. */
const DefaultSampleRate = 16000

/* A single classification result. */
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

/* Classification results, by convention ordered with the most probable
   label first. */
type Predictions []Prediction

func (p Predictions) AsJson() string {
	bytes, _ := json.MarshalIndent(p, "", "  ")
	return string(bytes)
}

// Sorts by descending score, keeping the relative order of equal scores.
func (p Predictions) SortByScore() {
	sort.SliceStable(p, func(i, j int) bool {
		return p[i].Score > p[j].Score
	})
}

// Returns true if the predictions are ordered with descending score.
func (p Predictions) SortedByScore() bool {
	return sort.SliceIsSorted(p, func(i, j int) bool {
		return p[i].Score > p[j].Score
	})
}

// Returns the labels in their current order.
func (p Predictions) Labels() []string {
	labels := make([]string, len(p))
	for i, prediction := range p {
		labels[i] = prediction.Label
	}
	return labels
}

/* Base interface for capabilities of a packaged model. */
type Capability interface {
	// Release resources, guaranteed to be called at the end of lifetime.
	Cleanup()
}

/* The interface a packaged model must implement. */
type Model interface {
	Capability

	// Run recognition on a single waveform, sampled with sampleRate Hz.
	// Sorting the result by descending score is a convention of the
	// implementations, not enforced here.
	Predict(wave []float64, sampleRate int) (Predictions, error)
}

/** Interface for waveform transformations applied before the model. */
type Preprocessor interface {
	Capability

	Process(wave []float64) ([]float64, error)
}

/** Interface for turning raw model output into ordered predictions. */
type Postprocessor interface {
	Capability

	Process(values []float64) (Predictions, error)
}
