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
	"encoding/json"
	"math"

	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/pkg/errors"
)

/* Turns raw model scores into a probability distribution over labels,
   ordered with the most probable label first. */
type Softmax struct {
	Labels []string `json:"labels"`
}

func NewSoftmax(labels []string) (*Softmax, error) {
	softmax := Softmax{Labels: labels}
	if err := softmax.validate(); err != nil {
		return nil, err
	}
	return &softmax, nil
}

func SoftmaxFromOptions(options json.RawMessage) (*Softmax, error) {
	var softmax Softmax
	if err := parseOptions(options, &softmax); err != nil {
		return nil, err
	}
	if err := softmax.validate(); err != nil {
		return nil, err
	}
	return &softmax, nil
}

func (s *Softmax) validate() error {
	if len(s.Labels) == 0 {
		return errors.Wrap(serving.LoadFailedError, "softmax needs labels")
	}
	return nil
}

func (s *Softmax) Process(values []float64) (serving.Predictions, error) {
	if len(values) != len(s.Labels) {
		return nil, errors.Wrapf(serving.InvalidInputError, "got %d values for %d labels", len(values), len(s.Labels))
	}
	// shift by the maximum, keeps the exponentials from overflowing
	max := values[0]
	for _, value := range values[1:] {
		if value > max {
			max = value
		}
	}
	sum := 0.0
	exps := make([]float64, len(values))
	for i, value := range values {
		exps[i] = math.Exp(value - max)
		sum += exps[i]
	}
	predictions := make(serving.Predictions, len(values))
	for i, exp := range exps {
		predictions[i] = serving.Prediction{
			Label: s.Labels[i],
			Score: exp / sum,
		}
	}
	predictions.SortByScore()
	return predictions, nil
}

func (s *Softmax) Cleanup() {
	// nothing held
}
