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

import "github.com/arthur-project/arthur-model-contracts/serving"

/* A Backend for testing, recording each load. */
type RecorderBackend struct {
	Model          serving.Model
	Instantiations []RecorderInstantiation
	Closed         bool
}

type RecorderInstantiation struct {
	Directory string
	Config    *serving.DeployConfig
}

func NewRecorderBackend(model serving.Model) *RecorderBackend {
	return &RecorderBackend{
		Model: model,
	}
}

func (r *RecorderBackend) Shutdown() {
	r.Closed = true
}

func (r *RecorderBackend) LoadModel(directory string, config *serving.DeployConfig) (serving.Model, error) {
	r.Instantiations = append(r.Instantiations, RecorderInstantiation{
		Directory: directory,
		Config:    config,
	})
	return r.Model, nil
}
