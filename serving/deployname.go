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
	"regexp"
	"strings"
)

const DefaultVersion = "latest"

// Formats a deployment name, "name" or "name:version". The default
// version is left out.
func FormatDeploymentName(name string, version *string) string {
	var versionToUse = DefaultVersion
	if version != nil {
		versionToUse = *version
	}
	builder := strings.Builder{}
	builder.WriteString(name)
	if versionToUse != DefaultVersion {
		builder.WriteByte(':')
		builder.WriteString(versionToUse)
	}
	return builder.String()
}

// Splits a deployment name into name and version. A missing version
// maps to the default version.
func ParseDeploymentName(id string) (string, string) {
	name, version, found := strings.Cut(id, ":")
	if !found {
		version = DefaultVersion
	}
	return name, version
}

var deploymentNameRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9_.-]*[a-z0-9])?$`)

// Checks a deployment name or version component. Allowed are lower case
// names of letters, digits, "_", "." and "-", not starting or ending
// with a separator.
func ValidateNameComponent(component string) error {
	if !deploymentNameRegex.MatchString(component) {
		return errors.Errorf("invalid name %s", component)
	}
	return nil
}
