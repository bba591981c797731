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
package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-project/arthur-model-contracts/processors"
	"github.com/arthur-project/arthur-model-contracts/serializer"
	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/arthur-project/arthur-model-contracts/serving/registry"
	"github.com/stretchr/testify/assert"
)

var _ serving.Backend = &RecorderBackend{}

const pipelineConfig = `
name: kws
version: "1.0"
metaVariables:
  - name: length
    value: 8
files:
  - model.h5
  - helpers.py
preprocessor:
  type: pad
  options:
    targetLength: ${length}
postprocessor:
  type: softmax
  options:
    labels: ["yes", "no"]
`

func makePipelineBundle(t *testing.T) *serving.Bundle {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, serving.DeployConfigName), []byte(pipelineConfig), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "model.h5"), []byte("weights"), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "helpers.py"), []byte("# helpers"), 0644))
	bundle, err := serving.LoadBundle(dir)
	assert.NoError(t, err)
	return bundle
}

func TestEndToEndPipeline(t *testing.T) {
	bundle := makePipelineBundle(t)
	assert.Equal(t, "kws:1.0", *bundle.Config.DeploymentName())

	r := registry.NewRegistry()
	processors.Register(r)

	preprocessor, err := r.NewPreprocessorFromSpec(bundle.Config.Preprocessor)
	assert.NoError(t, err)
	assert.NotNil(t, preprocessor)
	defer preprocessor.Cleanup()

	postprocessor, err := r.NewPostprocessorFromSpec(bundle.Config.Postprocessor)
	assert.NoError(t, err)
	assert.NotNil(t, postprocessor)
	defer postprocessor.Cleanup()

	model, err := NewFileModel(bundle.Model.Path, serving.Predictions{
		{Label: "yes", Score: 0.75},
		{Label: "no", Score: 0.25},
	})
	assert.NoError(t, err)
	defer model.Cleanup()

	// waveform in over the wire, padded, predicted, predictions out
	wire, err := serializer.EncodeWaveformBytes([]float64{0.5, -0.5, 0.25}, 8000, serializer.MimeMsgPack)
	assert.NoError(t, err)
	wave, sampleRate, err := serializer.DecodeWaveformBytes(wire, serializer.MimeMsgPack)
	assert.NoError(t, err)
	assert.Equal(t, 8000, sampleRate)

	padded, err := preprocessor.Process(wave)
	assert.NoError(t, err)
	assert.Equal(t, 8, len(padded))

	predictions, err := model.Predict(padded, sampleRate)
	assert.NoError(t, err)
	assert.True(t, predictions.SortedByScore())

	out, err := serializer.EncodePredictionsBytes(predictions, serializer.MimeJson)
	assert.NoError(t, err)
	assert.Equal(t, `[["yes",0.75],["no",0.25]]`, string(out))
}

func TestPostprocessorFromBundleConfig(t *testing.T) {
	bundle := makePipelineBundle(t)
	r := registry.NewRegistry()
	processors.Register(r)

	postprocessor, err := r.NewPostprocessorFromSpec(bundle.Config.Postprocessor)
	assert.NoError(t, err)
	predictions, err := postprocessor.Process([]float64{2.0, 0.5})
	assert.NoError(t, err)
	assert.Equal(t, []string{"yes", "no"}, predictions.Labels())
	assert.True(t, predictions.SortedByScore())
}

func TestRecorderBackend(t *testing.T) {
	bundle := makePipelineBundle(t)
	model := NewConstantModel(serving.Predictions{{Label: "yes", Score: 1.0}})
	backend := NewRecorderBackend(model)

	loaded, err := backend.LoadModel(bundle.Root, bundle.Config)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(backend.Instantiations))
	assert.Equal(t, bundle.Root, backend.Instantiations[0].Directory)
	assert.Equal(t, "kws", *backend.Instantiations[0].Config.Name)

	predictions, err := loaded.Predict([]float64{0.5}, serving.DefaultSampleRate)
	assert.NoError(t, err)
	assert.Equal(t, []string{"yes"}, predictions.Labels())
	assert.Equal(t, 1, model.Calls)

	backend.Shutdown()
	assert.True(t, backend.Closed)
}

func TestConstantModelInput(t *testing.T) {
	model := NewConstantModel(serving.Predictions{{Label: "yes", Score: 1.0}})
	_, err := model.Predict(nil, serving.DefaultSampleRate)
	assert.True(t, serving.IsInvalidInput(err))

	_, err = model.Predict([]float64{0.5}, 0)
	assert.True(t, serving.IsInvalidInput(err))

	model.Cleanup()
	assert.True(t, model.Closed)
}

func TestEnergyModel(t *testing.T) {
	model := NewEnergyModel(0.1)
	loud, err := model.Predict([]float64{0.9, -0.9, 0.9, -0.9}, serving.DefaultSampleRate)
	assert.NoError(t, err)
	assert.Equal(t, "loud", loud.Labels()[0])
	assert.True(t, loud.SortedByScore())

	quiet, err := model.Predict([]float64{0.001, -0.001}, serving.DefaultSampleRate)
	assert.NoError(t, err)
	assert.Equal(t, "quiet", quiet.Labels()[0])
}

func TestFileModelNeedsArtifact(t *testing.T) {
	_, err := NewFileModel(filepath.Join(t.TempDir(), "model.h5"), nil)
	assert.True(t, serving.IsLoadFailure(err))
}

func TestFailingModel(t *testing.T) {
	model := NewFailingModel("session gone")
	_, err := model.Predict([]float64{0.5}, serving.DefaultSampleRate)
	assert.True(t, serving.IsInferenceFailure(err))
	assert.Contains(t, err.Error(), "session gone")
}
