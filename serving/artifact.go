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
	"bytes"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
	"strings"
)

/* Format of a model artifact file. */
type ArtifactFormat string

const (
	// Keras model in a single HDF5 file (.h5)
	FormatKerasH5 ArtifactFormat = "keras-h5"
	// Keras model in the zip based archive format (.keras)
	FormatKerasArchive ArtifactFormat = "keras-archive"
	// Torch checkpoint (.pt / .pth), zip based container or legacy pickle stream
	FormatTorchSave ArtifactFormat = "torch-save"
)

// Returns the framework family of a format, "keras" or "torch".
func (f ArtifactFormat) Family() string {
	switch f {
	case FormatKerasH5, FormatKerasArchive:
		return "keras"
	case FormatTorchSave:
		return "torch"
	}
	return ""
}

var artifactExtensions = map[string]ArtifactFormat{
	".h5":    FormatKerasH5,
	".keras": FormatKerasArchive,
	".pt":    FormatTorchSave,
	".pth":   FormatTorchSave,
}

// Returns true if a file is named like a model artifact.
func IsModelArtifact(name string) bool {
	_, ok := artifactExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Detects the artifact format from the file name alone.
func DetectFormat(name string) (ArtifactFormat, error) {
	format, ok := artifactExtensions[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return "", errors.Wrapf(LoadFailedError, "no model artifact format for %s", name)
	}
	return format, nil
}

/* A resolved model artifact of a package. */
type Artifact struct {
	Path   string
	Name   string
	Format ArtifactFormat
	Size   int64
}

// Opens a model artifact. The file must exist and must be named in a known
// format, otherwise this is a load failure.
func OpenArtifact(path string) (*Artifact, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(LoadFailedError, "artifact %s not readable: %s", path, err.Error())
	}
	if stat.IsDir() {
		return nil, errors.Wrapf(LoadFailedError, "artifact %s is a directory", path)
	}
	return &Artifact{
		Path:   path,
		Name:   filepath.Base(path),
		Format: format,
		Size:   stat.Size(),
	}, nil
}

var hdf5Magic = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// First byte of a pickle stream with protocol >= 2, the legacy torch format.
const pickleProtoOpcode = 0x80

// Cross checks the artifact content against its name. Zip containers are
// shared by the keras archive and newer torch checkpoints, there the name
// decides. Returns the confirmed format.
func (a *Artifact) SniffFormat() (ArtifactFormat, error) {
	file, err := os.Open(a.Path)
	if err != nil {
		return "", errors.Wrapf(LoadFailedError, "artifact %s not readable: %s", a.Path, err.Error())
	}
	defer file.Close()
	head := make([]byte, 8)
	n, _ := file.Read(head)
	head = head[:n]
	switch {
	case bytes.HasPrefix(head, hdf5Magic):
		if a.Format != FormatKerasH5 {
			return "", a.sniffMismatch(FormatKerasH5)
		}
		return FormatKerasH5, nil
	case bytes.HasPrefix(head, zipMagic):
		if a.Format != FormatKerasArchive && a.Format != FormatTorchSave {
			return "", a.sniffMismatch(FormatTorchSave)
		}
		return a.Format, nil
	case len(head) > 0 && head[0] == pickleProtoOpcode:
		if a.Format != FormatTorchSave {
			return "", a.sniffMismatch(FormatTorchSave)
		}
		return FormatTorchSave, nil
	}
	return "", errors.Wrapf(LoadFailedError, "artifact %s has no recognizable model content", a.Path)
}

func (a *Artifact) sniffMismatch(found ArtifactFormat) error {
	return errors.Wrapf(LoadFailedError, "artifact %s is named %s but contains %s data", a.Path, a.Format, found)
}
