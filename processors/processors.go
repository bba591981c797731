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

	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/arthur-project/arthur-model-contracts/serving/registry"
	"github.com/pkg/errors"
)

// Ready made waveform pre- and postprocessors. Configurations select them
// via their registered type names:
//
//   preprocessor:
//     type: pad
//     options:
//       targetLength: 16000
//
// Register puts all of them into a registry, there is no automatic
// registration.

const PadName = "pad"
const NormalizeName = "normalize"
const ResampleName = "resample"
const SoftmaxName = "softmax"
const SigmoidName = "sigmoid"

// Registers all processors of this package.
func Register(r *registry.Registry) {
	r.RegisterPreprocessor(PadName, func(options json.RawMessage) (serving.Preprocessor, error) {
		pad, err := PadFromOptions(options)
		if err != nil {
			return nil, err
		}
		return pad, nil
	})
	r.RegisterPreprocessor(NormalizeName, func(options json.RawMessage) (serving.Preprocessor, error) {
		normalize, err := PeakNormalizeFromOptions(options)
		if err != nil {
			return nil, err
		}
		return normalize, nil
	})
	r.RegisterPreprocessor(ResampleName, func(options json.RawMessage) (serving.Preprocessor, error) {
		resample, err := ResampleFromOptions(options)
		if err != nil {
			return nil, err
		}
		return resample, nil
	})
	r.RegisterPostprocessor(SoftmaxName, func(options json.RawMessage) (serving.Postprocessor, error) {
		softmax, err := SoftmaxFromOptions(options)
		if err != nil {
			return nil, err
		}
		return softmax, nil
	})
	r.RegisterPostprocessor(SigmoidName, func(options json.RawMessage) (serving.Postprocessor, error) {
		sigmoid, err := SigmoidFromOptions(options)
		if err != nil {
			return nil, err
		}
		return sigmoid, nil
	})
}

// Unmarshals processor options into target, tolerating absent options.
func parseOptions(options json.RawMessage, target interface{}) error {
	if len(options) == 0 {
		return nil
	}
	if err := json.Unmarshal(options, target); err != nil {
		return errors.Wrapf(serving.LoadFailedError, "invalid options: %s", err.Error())
	}
	return nil
}
