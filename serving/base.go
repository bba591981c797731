package serving

// Embeddable skeletons for the capability interfaces. They satisfy the
// interfaces but answer every call with NotImplementedError, so concrete
// implementations only override what they support.

/* Model skeleton without an implementation. */
type BaseModel struct {
	// Path of the model artifact, as handed to the constructor.
	Path string
}

// Creates a model skeleton for an artifact path. The path is only stored,
// nothing is loaded or validated here.
func NewBaseModel(path string) *BaseModel {
	return &BaseModel{Path: path}
}

func (m *BaseModel) Predict(wave []float64, sampleRate int) (Predictions, error) {
	return nil, NotImplementedError
}

func (m *BaseModel) Cleanup() {
	// nothing held
}

/* Preprocessor skeleton without an implementation. */
type BasePreprocess struct{}

func (p *BasePreprocess) Process(wave []float64) ([]float64, error) {
	return nil, NotImplementedError
}

func (p *BasePreprocess) Cleanup() {
	// nothing held
}

/* Postprocessor skeleton without an implementation. */
type BasePostprocess struct {
}

func (p *BasePostprocess) Process(values []float64) (Predictions, error) {
	return nil, NotImplementedError
}

func (p *BasePostprocess) Cleanup() {
	// nothing held
}
