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
package serializer

import (
	"bytes"
	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/pkg/errors"
)

// Wire form of the values crossing the model boundary: a waveform travels
// as a small JSON header followed by the samples as primitive array,
// predictions as array of [label, score] pairs. Both exist in JSON and
// MsgPack, selected via content type.

type waveformHeader struct {
	SampleRate int `json:"sampleRate"`
	Length     int `json:"length"`
}

// Writes a waveform with its sample rate.
func WriteWaveform(backend SerializingBackend, wave []float64, sampleRate int) error {
	header := waveformHeader{
		SampleRate: sampleRate,
		Length:     len(wave),
	}
	if err := backend.EncodeJson(&header); err != nil {
		return err
	}
	if err := backend.EncodeArrayLen(len(wave)); err != nil {
		return err
	}
	for _, sample := range wave {
		if err := backend.EncodeFloat64(sample); err != nil {
			return err
		}
	}
	return backend.Flush()
}

// Reads a waveform and its sample rate. A header without sample rate maps
// to the default sample rate.
func ReadWaveform(backend DeserializingBackend) ([]float64, int, error) {
	var header waveformHeader
	if err := backend.DecodeJson(&header); err != nil {
		return nil, 0, err
	}
	sampleRate := header.SampleRate
	if sampleRate == 0 {
		sampleRate = serving.DefaultSampleRate
	}
	if sampleRate < 0 {
		return nil, 0, errors.Wrapf(serving.InvalidInputError, "impossible sample rate %d", sampleRate)
	}
	length, err := backend.DecodeArrayLen()
	if err != nil {
		return nil, 0, err
	}
	if length < 0 {
		return nil, 0, errors.Wrap(serving.InvalidInputError, "no sample array")
	}
	if header.Length != 0 && header.Length != length {
		return nil, 0, errors.Wrapf(serving.InvalidInputError, "header announces %d samples, got %d", header.Length, length)
	}
	wave := make([]float64, length)
	for i := 0; i < length; i++ {
		sample, err := backend.DecodeFloat64()
		if err != nil {
			return nil, 0, err
		}
		wave[i] = sample
	}
	return wave, sampleRate, nil
}

// Writes predictions as [label, score] pairs, keeping their order.
func WritePredictions(backend SerializingBackend, predictions serving.Predictions) error {
	if err := backend.EncodeArrayLen(len(predictions)); err != nil {
		return err
	}
	for _, prediction := range predictions {
		if err := backend.EncodeArrayLen(2); err != nil {
			return err
		}
		if err := backend.EncodeString(prediction.Label); err != nil {
			return err
		}
		if err := backend.EncodeFloat64(prediction.Score); err != nil {
			return err
		}
	}
	return backend.Flush()
}

// Reads predictions, keeping their order.
func ReadPredictions(backend DeserializingBackend) (serving.Predictions, error) {
	length, err := backend.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, errors.Wrap(serving.InvalidInputError, "no prediction array")
	}
	predictions := make(serving.Predictions, length)
	for i := 0; i < length; i++ {
		pairLength, err := backend.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		if pairLength != 2 {
			return nil, errors.Wrapf(serving.InvalidInputError, "expected [label, score] pair, got %d elements", pairLength)
		}
		label, err := backend.DecodeString()
		if err != nil {
			return nil, err
		}
		score, err := backend.DecodeFloat64()
		if err != nil {
			return nil, err
		}
		predictions[i] = serving.Prediction{Label: label, Score: score}
	}
	return predictions, nil
}

// Serializes a waveform into bytes of the given content type.
func EncodeWaveformBytes(wave []float64, sampleRate int, contentType string) ([]byte, error) {
	backendType, err := BackendTypeForContentType(contentType)
	if err != nil {
		return nil, err
	}
	buf := bytes.Buffer{}
	backend, err := CreateSerializingBackend(backendType, &buf)
	if err != nil {
		return nil, err
	}
	if err := WriteWaveform(backend, wave, sampleRate); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parses a waveform from bytes of the given content type.
func DecodeWaveformBytes(data []byte, contentType string) ([]float64, int, error) {
	backendType, err := BackendTypeForContentType(contentType)
	if err != nil {
		return nil, 0, err
	}
	backend, err := CreateDeserializingBackend(backendType, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	return ReadWaveform(backend)
}

// Serializes predictions into bytes of the given content type.
func EncodePredictionsBytes(predictions serving.Predictions, contentType string) ([]byte, error) {
	backendType, err := BackendTypeForContentType(contentType)
	if err != nil {
		return nil, err
	}
	buf := bytes.Buffer{}
	backend, err := CreateSerializingBackend(backendType, &buf)
	if err != nil {
		return nil, err
	}
	if err := WritePredictions(backend, predictions); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parses predictions from bytes of the given content type.
func DecodePredictionsBytes(data []byte, contentType string) (serving.Predictions, error) {
	backendType, err := BackendTypeForContentType(contentType)
	if err != nil {
		return nil, err
	}
	backend, err := CreateDeserializingBackend(backendType, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ReadPredictions(backend)
}
