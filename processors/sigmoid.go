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

/* Maps raw model scores through a sigmoid, one independent probability
   per label. For multi label models where scores do not compete. */
type Sigmoid struct {
	Labels []string `json:"labels"`
}

func NewSigmoid(labels []string) (*Sigmoid, error) {
	sigmoid := Sigmoid{Labels: labels}
	if err := sigmoid.validate(); err != nil {
		return nil, err
	}
	return &sigmoid, nil
}

func SigmoidFromOptions(options json.RawMessage) (*Sigmoid, error) {
	var sigmoid Sigmoid
	if err := parseOptions(options, &sigmoid); err != nil {
		return nil, err
	}
	if err := sigmoid.validate(); err != nil {
		return nil, err
	}
	return &sigmoid, nil
}

func (s *Sigmoid) validate() error {
	if len(s.Labels) == 0 {
		return errors.Wrap(serving.LoadFailedError, "sigmoid needs labels")
	}
	return nil
}

func (s *Sigmoid) Process(values []float64) (serving.Predictions, error) {
	if len(values) != len(s.Labels) {
		return nil, errors.Wrapf(serving.InvalidInputError, "got %d values for %d labels", len(values), len(s.Labels))
	}
	predictions := make(serving.Predictions, len(values))
	for i, value := range values {
		predictions[i] = serving.Prediction{
			Label: s.Labels[i],
			Score: 1.0 / (1.0 + math.Exp(-value)),
		}
	}
	predictions.SortByScore()
	return predictions, nil
}

func (s *Sigmoid) Cleanup() {
	// nothing held
}
