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
	"math"

	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/pkg/errors"
)

// In memory models for testing contract behavior without a framework
// runtime behind them.

func checkPredictInput(wave []float64, sampleRate int) error {
	if len(wave) == 0 {
		return errors.Wrap(serving.InvalidInputError, "empty waveform")
	}
	if sampleRate <= 0 {
		return errors.Wrapf(serving.InvalidInputError, "sample rate %d", sampleRate)
	}
	return nil
}

/* A model which always answers with the same predictions. */
type ConstantModel struct {
	Result serving.Predictions
	Calls  int
	Closed bool
}

func NewConstantModel(result serving.Predictions) *ConstantModel {
	return &ConstantModel{Result: result}
}

func (c *ConstantModel) Predict(wave []float64, sampleRate int) (serving.Predictions, error) {
	if err := checkPredictInput(wave, sampleRate); err != nil {
		return nil, err
	}
	c.Calls += 1
	return c.Result, nil
}

func (c *ConstantModel) Cleanup() {
	c.Closed = true
}

/* Scores loud against quiet from the signal energy. */
type EnergyModel struct {
	Threshold  float64
	LoudLabel  string
	QuietLabel string
}

func NewEnergyModel(threshold float64) *EnergyModel {
	return &EnergyModel{
		Threshold:  threshold,
		LoudLabel:  "loud",
		QuietLabel: "quiet",
	}
}

func (e *EnergyModel) Predict(wave []float64, sampleRate int) (serving.Predictions, error) {
	if err := checkPredictInput(wave, sampleRate); err != nil {
		return nil, err
	}
	sum := 0.0
	for _, sample := range wave {
		sum += sample * sample
	}
	rms := math.Sqrt(sum / float64(len(wave)))
	loud := rms / (rms + e.Threshold)
	predictions := serving.Predictions{
		{Label: e.LoudLabel, Score: loud},
		{Label: e.QuietLabel, Score: 1.0 - loud},
	}
	predictions.SortByScore()
	return predictions, nil
}

func (e *EnergyModel) Cleanup() {
	// nothing
}

/* A model bound to an artifact file, construction fails without it. */
type FileModel struct {
	serving.BaseModel
	Artifact *serving.Artifact
	Result   serving.Predictions
}

func NewFileModel(path string, result serving.Predictions) (*FileModel, error) {
	artifact, err := serving.OpenArtifact(path)
	if err != nil {
		return nil, err
	}
	return &FileModel{
		BaseModel: *serving.NewBaseModel(path),
		Artifact:  artifact,
		Result:    result,
	}, nil
}

func (f *FileModel) Predict(wave []float64, sampleRate int) (serving.Predictions, error) {
	if err := checkPredictInput(wave, sampleRate); err != nil {
		return nil, err
	}
	return f.Result, nil
}

/* A model failing every request. */
type FailingModel struct {
	Message string
}

func NewFailingModel(message string) *FailingModel {
	return &FailingModel{Message: message}
}

func (f *FailingModel) Predict(wave []float64, sampleRate int) (serving.Predictions, error) {
	return nil, errors.Wrap(serving.InferenceError, f.Message)
}

func (f *FailingModel) Cleanup() {
	// nothing
}
