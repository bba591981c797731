package serving

// A Backend turns an unpacked model directory into a runnable Model.
// Backends live outside this module (framework runtimes), this is the
// contract they implement.
type Backend interface {
	// Load a model from an unpacked directory. config is the already
	// parsed deployment configuration of the directory.
	LoadModel(directory string, config *DeployConfig) (Model, error)
}
