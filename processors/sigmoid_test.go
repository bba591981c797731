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
package processors

import (
	"math"
	"testing"

	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/stretchr/testify/assert"
)

func TestSigmoid(t *testing.T) {
	sigmoid, err := NewSigmoid([]string{"music", "speech"})
	assert.NoError(t, err)
	predictions, err := sigmoid.Process([]float64{0, 2})
	assert.NoError(t, err)
	assert.Equal(t, []string{"speech", "music"}, predictions.Labels())
	assert.InDelta(t, 1.0/(1.0+math.Exp(-2)), predictions[0].Score, 1e-9)
	assert.InDelta(t, 0.5, predictions[1].Score, 1e-9)
}

func TestSigmoidIndependentScores(t *testing.T) {
	// scores do not compete, both may be high
	sigmoid, err := NewSigmoid([]string{"a", "b"})
	assert.NoError(t, err)
	predictions, err := sigmoid.Process([]float64{4, 5})
	assert.NoError(t, err)
	assert.True(t, predictions[0].Score > 0.9)
	assert.True(t, predictions[1].Score > 0.9)
}

func TestSigmoidMismatch(t *testing.T) {
	sigmoid, err := NewSigmoid([]string{"a"})
	assert.NoError(t, err)
	_, err = sigmoid.Process([]float64{1, 2})
	assert.True(t, serving.IsInvalidInput(err))
}

func TestSigmoidValidation(t *testing.T) {
	_, err := NewSigmoid([]string{})
	assert.True(t, serving.IsLoadFailure(err))
}
