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
	"testing"

	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/stretchr/testify/assert"
)

var contentTypes = []string{MimeJson, MimeMsgPack}

func TestWaveformJsonForm(t *testing.T) {
	data, err := EncodeWaveformBytes([]float64{0.5, -0.25}, 8000, MimeJson)
	assert.NoError(t, err)
	assert.Equal(t, `{"sampleRate":8000,"length":2}[0.5,-0.25]`, string(data))
}

func TestWaveformEmptyJsonForm(t *testing.T) {
	data, err := EncodeWaveformBytes(nil, 16000, MimeJson)
	assert.NoError(t, err)
	assert.Equal(t, `{"sampleRate":16000,"length":0}[]`, string(data))
}

func TestWaveformRoundTrip(t *testing.T) {
	wave := []float64{0.5, -0.25, 0.125, 0}
	for _, contentType := range contentTypes {
		data, err := EncodeWaveformBytes(wave, 8000, contentType)
		assert.NoError(t, err)
		decoded, sampleRate, err := DecodeWaveformBytes(data, contentType)
		assert.NoError(t, err)
		assert.Equal(t, wave, decoded)
		assert.Equal(t, 8000, sampleRate)
	}
}

func TestWaveformDefaultSampleRate(t *testing.T) {
	for _, contentType := range contentTypes {
		data, err := EncodeWaveformBytes([]float64{0.5}, 0, contentType)
		assert.NoError(t, err)
		_, sampleRate, err := DecodeWaveformBytes(data, contentType)
		assert.NoError(t, err)
		assert.Equal(t, serving.DefaultSampleRate, sampleRate)
	}
}

func TestWaveformLengthMismatch(t *testing.T) {
	data := []byte(`{"sampleRate":8000,"length":3}[0.5]`)
	_, _, err := DecodeWaveformBytes(data, MimeJson)
	assert.True(t, serving.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "header announces 3 samples, got 1")
}

func TestWaveformNegativeSampleRate(t *testing.T) {
	data := []byte(`{"sampleRate":-8000}[0.5]`)
	_, _, err := DecodeWaveformBytes(data, MimeJson)
	assert.True(t, serving.IsInvalidInput(err))
}

func TestWaveformWithoutHeaderFields(t *testing.T) {
	// a bare header is fine, sample rate falls back to the default
	data := []byte(`{}[0.5,0.25]`)
	wave, sampleRate, err := DecodeWaveformBytes(data, MimeJson)
	assert.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.25}, wave)
	assert.Equal(t, serving.DefaultSampleRate, sampleRate)
}

func TestPredictionsJsonForm(t *testing.T) {
	predictions := serving.Predictions{
		{Label: "loud", Score: 0.75},
		{Label: "quiet", Score: 0.25},
	}
	data, err := EncodePredictionsBytes(predictions, MimeJson)
	assert.NoError(t, err)
	assert.Equal(t, `[["loud",0.75],["quiet",0.25]]`, string(data))
}

func TestPredictionsRoundTrip(t *testing.T) {
	predictions := serving.Predictions{
		{Label: "loud", Score: 0.75},
		{Label: "quiet", Score: 0.25},
	}
	for _, contentType := range contentTypes {
		data, err := EncodePredictionsBytes(predictions, contentType)
		assert.NoError(t, err)
		decoded, err := DecodePredictionsBytes(data, contentType)
		assert.NoError(t, err)
		assert.Equal(t, predictions, decoded)
	}
}

func TestPredictionsEmpty(t *testing.T) {
	data, err := EncodePredictionsBytes(serving.Predictions{}, MimeJson)
	assert.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	for _, contentType := range contentTypes {
		data, err := EncodePredictionsBytes(serving.Predictions{}, contentType)
		assert.NoError(t, err)
		decoded, err := DecodePredictionsBytes(data, contentType)
		assert.NoError(t, err)
		assert.Empty(t, decoded)
	}
}

func TestPredictionsOrderKept(t *testing.T) {
	// the wire keeps whatever order the producer chose
	predictions := serving.Predictions{
		{Label: "b", Score: 0.25},
		{Label: "a", Score: 0.75},
	}
	for _, contentType := range contentTypes {
		data, err := EncodePredictionsBytes(predictions, contentType)
		assert.NoError(t, err)
		decoded, err := DecodePredictionsBytes(data, contentType)
		assert.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, decoded.Labels())
	}
}

func TestPredictionsBadPair(t *testing.T) {
	data := []byte(`[["a",0.5,0.5]]`)
	_, err := DecodePredictionsBytes(data, MimeJson)
	assert.True(t, serving.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "expected [label, score] pair, got 3 elements")
}

func TestUnsupportedContentType(t *testing.T) {
	_, err := EncodeWaveformBytes([]float64{0.5}, 8000, "text/plain")
	assert.Error(t, err)
	_, _, err = DecodeWaveformBytes(nil, "text/plain")
	assert.Error(t, err)
}
