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
	"github.com/arthur-project/arthur-model-contracts/util/osext"
	"github.com/pkg/errors"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resolution of the files key into roles. Roles are assigned by naming
// convention, matching what trained packages look like:
//   model.h5 / model.keras / model.pt / model.pth  -> the model artifact
//   preprocessor.pkl  -> serialized preprocessor object
//   preprocessor.py   -> preprocessor class script
//   postprocessor.pkl -> serialized postprocessor object
//   postprocessor.py  -> postprocessor class script
//   other *.py        -> dependency scripts
// Everything else travels along as extra file.

/* Role of a file inside a package. */
type FileRole string

const (
	RoleModel               FileRole = "model"
	RolePreprocessorObject  FileRole = "preprocessor-object"
	RolePreprocessorScript  FileRole = "preprocessor-script"
	RolePostprocessorObject FileRole = "postprocessor-object"
	RolePostprocessorScript FileRole = "postprocessor-script"
	RoleDependencyScript    FileRole = "dependency-script"
	RoleExtra               FileRole = "extra"
)

const preprocessorStem = "preprocessor"
const postprocessorStem = "postprocessor"

// Assigns the role of a file from its name alone.
func ClassifyFile(name string) FileRole {
	base := path.Base(strings.ToLower(filepath.ToSlash(name)))
	if IsModelArtifact(base) {
		return RoleModel
	}
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	switch ext {
	case ".pkl", ".pickle":
		switch stem {
		case preprocessorStem:
			return RolePreprocessorObject
		case postprocessorStem:
			return RolePostprocessorObject
		}
		return RoleExtra
	case ".py":
		switch stem {
		case preprocessorStem:
			return RolePreprocessorScript
		case postprocessorStem:
			return RolePostprocessorScript
		}
		return RoleDependencyScript
	}
	return RoleExtra
}

/* A single resolved file of a package. */
type BundleFile struct {
	// Name as listed in the files key
	Name string
	// Full path on disk
	Path string
	Role FileRole
}

/* A resolved package directory. */
type Bundle struct {
	// Root directory of the package
	Root   string
	Config *DeployConfig
	// All resolved files in listing order
	Files []BundleFile
	// The model artifact
	Model *Artifact
	// Top level files which exist next to the configuration but are not listed
	Unlisted []string
}

// Returns all files carrying a role, in listing order.
func (b *Bundle) FilesWithRole(role FileRole) []BundleFile {
	var result []BundleFile
	for _, file := range b.Files {
		if file.Role == role {
			result = append(result, file)
		}
	}
	return result
}

func (b *Bundle) singleWithRole(role FileRole) *BundleFile {
	for _, file := range b.Files {
		if file.Role == role {
			found := file
			return &found
		}
	}
	return nil
}

// Returns the serialized preprocessor object or nil.
func (b *Bundle) PreprocessorObject() *BundleFile {
	return b.singleWithRole(RolePreprocessorObject)
}

// Returns the preprocessor class script or nil.
func (b *Bundle) PreprocessorScript() *BundleFile {
	return b.singleWithRole(RolePreprocessorScript)
}

// Returns the serialized postprocessor object or nil.
func (b *Bundle) PostprocessorObject() *BundleFile {
	return b.singleWithRole(RolePostprocessorObject)
}

// Returns the postprocessor class script or nil.
func (b *Bundle) PostprocessorScript() *BundleFile {
	return b.singleWithRole(RolePostprocessorScript)
}

// Returns the dependency scripts, in listing order.
func (b *Bundle) DependencyScripts() []BundleFile {
	return b.FilesWithRole(RoleDependencyScript)
}

// Resolves the files of a configuration against a package directory.
// All listed files must exist, exactly one must be a model artifact and a
// serialized processor object must come with its class script.
func ResolveBundle(root string, config *DeployConfig) (*Bundle, error) {
	bundle := Bundle{
		Root:   root,
		Config: config,
	}
	seen := make(map[string]bool)
	for _, name := range config.Files {
		if seen[name] {
			continue
		}
		seen[name] = true
		filePath, err := secureJoin(root, name)
		if err != nil {
			return nil, err
		}
		if !osext.FileExists(filePath) || osext.IsDirectory(filePath) {
			return nil, errors.Wrapf(LoadFailedError, "listed file %s does not exist in %s", name, root)
		}
		role := ClassifyFile(name)
		bundle.Files = append(bundle.Files, BundleFile{
			Name: name,
			Path: filePath,
			Role: role,
		})
		if role == RoleModel {
			if bundle.Model != nil {
				return nil, errors.Wrapf(LoadFailedError, "more than one model artifact listed (%s and %s)", bundle.Model.Name, name)
			}
			artifact, err := OpenArtifact(filePath)
			if err != nil {
				return nil, err
			}
			bundle.Model = artifact
		}
	}
	if bundle.Model == nil {
		return nil, errors.Wrap(LoadFailedError, "no model artifact listed")
	}
	if bundle.PreprocessorObject() != nil && bundle.PreprocessorScript() == nil {
		return nil, errors.Wrap(LoadFailedError, "preprocessor object listed without its class script")
	}
	if bundle.PostprocessorObject() != nil && bundle.PostprocessorScript() == nil {
		return nil, errors.Wrap(LoadFailedError, "postprocessor object listed without its class script")
	}
	unlisted, err := collectUnlisted(root, seen)
	if err != nil {
		return nil, err
	}
	bundle.Unlisted = unlisted
	return &bundle, nil
}

// Loads and resolves a package directory with its deployment configuration.
func LoadBundle(root string) (*Bundle, error) {
	if !osext.IsDirectory(root) {
		return nil, errors.Wrapf(LoadFailedError, "%s is not a directory", root)
	}
	config, err := LoadDeployConfig(filepath.Join(root, DeployConfigName))
	if err != nil {
		return nil, err
	}
	return ResolveBundle(root, config)
}

// Joins a listed name below root, rejecting absolute names and escapes.
func secureJoin(root string, name string) (string, error) {
	slashName := filepath.ToSlash(name)
	if path.IsAbs(slashName) || filepath.IsAbs(name) {
		return "", errors.Wrapf(LoadFailedError, "absolute path %s not allowed", name)
	}
	joined := filepath.Join(root, filepath.FromSlash(path.Clean(slashName)))
	if !strings.HasPrefix(joined, filepath.Clean(root)+string(os.PathSeparator)) {
		return "", errors.Wrapf(LoadFailedError, "%s escapes the package directory", name)
	}
	return joined, nil
}

func collectUnlisted(root string, seen map[string]bool) ([]string, error) {
	names, err := osext.ListFileNames(root)
	if err != nil {
		return nil, err
	}
	var unlisted []string
	for _, name := range names {
		if name == DeployConfigName || seen[name] || strings.HasPrefix(name, ".") {
			continue
		}
		unlisted = append(unlisted, name)
	}
	return unlisted, nil
}
