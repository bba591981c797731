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
package registry

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/pkg/errors"
)

// Name based construction of capabilities. Implementations register a
// factory under a type name, configurations select them via that name.
// Options are handed over raw, interpreting them is up to the factory.

// Creates a model for an artifact path.
type ModelFactory func(path string, options json.RawMessage) (serving.Model, error)

// Creates a preprocessor.
type PreprocessorFactory func(options json.RawMessage) (serving.Preprocessor, error)

// Creates a postprocessor.
type PostprocessorFactory func(options json.RawMessage) (serving.Postprocessor, error)

// Lookup of a name nothing is registered for.
var UnregisteredError = errors.New("no implementation registered")

/* A name to factory registry, safe for concurrent use. */
type Registry struct {
	mutex          sync.RWMutex
	models         map[string]ModelFactory
	preprocessors  map[string]PreprocessorFactory
	postprocessors map[string]PostprocessorFactory
}

func NewRegistry() *Registry {
	return &Registry{
		models:         make(map[string]ModelFactory),
		preprocessors:  make(map[string]PreprocessorFactory),
		postprocessors: make(map[string]PostprocessorFactory),
	}
}

// Registers a model factory. Registering an existing name again
// overwrites the previous factory.
func (r *Registry) RegisterModel(name string, factory ModelFactory) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.models[name] = factory
}

func (r *Registry) RegisterPreprocessor(name string, factory PreprocessorFactory) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.preprocessors[name] = factory
}

func (r *Registry) RegisterPostprocessor(name string, factory PostprocessorFactory) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.postprocessors[name] = factory
}

func (r *Registry) LookupModel(name string) (ModelFactory, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	factory, ok := r.models[name]
	if !ok {
		return nil, errors.Wrapf(UnregisteredError, "model %s", name)
	}
	return factory, nil
}

func (r *Registry) LookupPreprocessor(name string) (PreprocessorFactory, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	factory, ok := r.preprocessors[name]
	if !ok {
		return nil, errors.Wrapf(UnregisteredError, "preprocessor %s", name)
	}
	return factory, nil
}

func (r *Registry) LookupPostprocessor(name string) (PostprocessorFactory, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	factory, ok := r.postprocessors[name]
	if !ok {
		return nil, errors.Wrapf(UnregisteredError, "postprocessor %s", name)
	}
	return factory, nil
}

// Constructs a model by registered name.
func (r *Registry) NewModel(name string, path string, options json.RawMessage) (serving.Model, error) {
	factory, err := r.LookupModel(name)
	if err != nil {
		return nil, err
	}
	return factory(path, options)
}

// Constructs a preprocessor by registered name.
func (r *Registry) NewPreprocessor(name string, options json.RawMessage) (serving.Preprocessor, error) {
	factory, err := r.LookupPreprocessor(name)
	if err != nil {
		return nil, err
	}
	return factory(options)
}

// Constructs a postprocessor by registered name.
func (r *Registry) NewPostprocessor(name string, options json.RawMessage) (serving.Postprocessor, error) {
	factory, err := r.LookupPostprocessor(name)
	if err != nil {
		return nil, err
	}
	return factory(options)
}

// Constructs the preprocessor a configuration selects, nil spec means no
// preprocessing.
func (r *Registry) NewPreprocessorFromSpec(spec *serving.ProcessorSpec) (serving.Preprocessor, error) {
	if spec == nil {
		return nil, nil
	}
	return r.NewPreprocessor(spec.Type, spec.Options)
}

// Constructs the postprocessor a configuration selects, nil spec means no
// postprocessing.
func (r *Registry) NewPostprocessorFromSpec(spec *serving.ProcessorSpec) (serving.Postprocessor, error) {
	if spec == nil {
		return nil, nil
	}
	return r.NewPostprocessor(spec.Type, spec.Options)
}

// Returns the registered model names, sorted.
func (r *Registry) ModelNames() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	keys := make([]string, 0, len(r.models))
	for key := range r.models {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Returns the registered preprocessor names, sorted.
func (r *Registry) PreprocessorNames() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	keys := make([]string, 0, len(r.preprocessors))
	for key := range r.preprocessors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Returns the registered postprocessor names, sorted.
func (r *Registry) PostprocessorNames() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	keys := make([]string, 0, len(r.postprocessors))
	for key := range r.postprocessors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// The default registry, used by the package level Register functions.
var DefaultRegistry = NewRegistry()

func RegisterModel(name string, factory ModelFactory) {
	DefaultRegistry.RegisterModel(name, factory)
}

func RegisterPreprocessor(name string, factory PreprocessorFactory) {
	DefaultRegistry.RegisterPreprocessor(name, factory)
}

func RegisterPostprocessor(name string, factory PostprocessorFactory) {
	DefaultRegistry.RegisterPostprocessor(name, factory)
}
