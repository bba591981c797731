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
	"encoding/json"
	"github.com/pkg/errors"
	"os"
	"strings"
)

// The name of the deployment configuration file inside a package
const DeployConfigName = "deployment.yaml"

// The files key of a deployment configuration. Accepts a JSON/YAML list
// or a single comma separated string.
type FileList []string

func (f *FileList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*f = asList
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return errors.New("files must be a list of names or a comma separated string")
	}
	*f = ParseFilesKey(asString)
	return nil
}

func (f FileList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(f))
}

// Parses a comma separated files value. Entries are trimmed,
// empty entries are dropped.
func ParseFilesKey(value string) FileList {
	parts := strings.Split(value, ",")
	result := make(FileList, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Selects a processor implementation by registered name plus free form
// options, which stay raw until the factory interprets them.
type ProcessorSpec struct {
	Type    string          `json:"type"`
	Options json.RawMessage `json:"options,omitempty"`
}

/* The deployment configuration of a packaged model. */
type DeployConfig struct {
	Name    *string  `json:"name"`
	Version *string  `json:"version"`
	Files   FileList `json:"files"`

	Preprocessor  *ProcessorSpec `json:"preprocessor"`
	Postprocessor *ProcessorSpec `json:"postprocessor"`

	ParsedMetaVariables MetaVariables `json:"metaVariables"`

	json []byte
}

func (c *DeployConfig) MetaVariables() MetaVariables {
	return c.ParsedMetaVariables
}

// Returns the decoded JSON (after applying meta variables)
func (c *DeployConfig) Json() []byte {
	return c.json
}

// Returns the deployment name if the configuration carries one.
func (c *DeployConfig) DeploymentName() *string {
	if c.Name == nil {
		return nil
	}
	res := FormatDeploymentName(*c.Name, c.Version)
	return &res
}

// Parses a deployment configuration (YAML or JSON) with meta variables applied.
func ParseDeployConfig(data []byte) (*DeployConfig, error) {
	plainJson, err := DecodeMetaYaml(data)
	if err != nil {
		return nil, errors.Wrapf(LoadFailedError, "invalid deployment configuration: %s", err.Error())
	}
	var config DeployConfig
	if err := json.Unmarshal(plainJson, &config); err != nil {
		return nil, errors.Wrapf(LoadFailedError, "invalid deployment configuration: %s", err.Error())
	}
	config.json = plainJson
	return &config, nil
}

func LoadDeployConfig(filePath string) (*DeployConfig, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(LoadFailedError, "could not read %s: %s", filePath, err.Error())
	}
	return ParseDeployConfig(content)
}

// Builds a configuration from a plain files value, for callers which hand
// over the file listing directly instead of a configuration file.
func ConfigFromFilesKey(value string) *DeployConfig {
	return &DeployConfig{
		Files: ParseFilesKey(value),
	}
}
