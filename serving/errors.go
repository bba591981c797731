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
package serving

import (
	"github.com/pkg/errors"
)

// Error kinds of the serving contracts. Implementations wrap these with
// errors.Wrap / errors.Wrapf so that callers can distinguish the kind
// while the message keeps the concrete cause.

// A declared capability whose implementation is missing.
var NotImplementedError = errors.New("not implemented")

// Construction of a model, preprocessor or postprocessor failed
// (missing files, broken configuration, unusable artifact).
var LoadFailedError = errors.New("load failure")

// A request carried data the capability cannot work with.
var InvalidInputError = errors.New("invalid input")

// Processing of a valid request failed inside a capability.
var InferenceError = errors.New("inference failure")

func IsNotImplemented(err error) bool {
	return errors.Cause(err) == NotImplementedError
}

func IsLoadFailure(err error) bool {
	return errors.Cause(err) == LoadFailedError
}

func IsInvalidInput(err error) bool {
	return errors.Cause(err) == InvalidInputError
}

func IsInferenceFailure(err error) bool {
	return errors.Cause(err) == InferenceError
}
