package zipdir

import (
	"archive/zip"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Zip and unzip directories, e.g. for moving packaged models around.
// Hidden files (dot prefix) are skipped during packing.

// Zips a directory into a fresh temporary file, returning its name.
func ZipDirectory(directory string) (string, error) {
	outFile, err := os.CreateTemp("", "*.zip")
	if err != nil {
		return "", err
	}
	defer outFile.Close()
	logrus.Debugf("Zipping %s into %s", directory, outFile.Name())
	err = ZipDirectoryToStream(directory, outFile)
	return outFile.Name(), err
}

// Zips the content of a directory into out. The directory itself is not part
// of the entry names.
func ZipDirectoryToStream(directory string, out io.Writer) error {
	stat, err := os.Stat(directory)
	if err != nil {
		return errors.Wrap(err, "could not stat directory")
	}
	if !stat.IsDir() {
		return errors.New("not a directory")
	}
	writer := zip.NewWriter(out)
	err = filepath.WalkDir(directory, func(file string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if isHidden(entry.Name()) && file != directory {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		relative, err := filepath.Rel(directory, file)
		if err != nil {
			return err
		}
		return addFile(writer, file, filepath.ToSlash(relative))
	})
	if err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "error on closing")
	}
	return nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func addFile(writer *zip.Writer, file string, entryName string) error {
	logrus.Debugf("Adding file %s", entryName)
	fileWriter, err := writer.Create(entryName)
	if err != nil {
		return errors.Wrapf(err, "could not create entry %s", entryName)
	}
	reader, err := os.Open(file)
	if err != nil {
		return errors.Wrapf(err, "could not read file %s", file)
	}
	defer reader.Close()
	_, err = io.Copy(fileWriter, reader)
	return errors.Wrapf(err, "could not write file %s", file)
}

// Unzips a zip file into a directory, which is created if necessary.
func UnzipDirectory(zipFile string, directory string) error {
	reader, err := zip.OpenReader(zipFile)
	if err != nil {
		return errors.Wrap(err, "could not open zip file")
	}
	defer reader.Close()
	return unzipFromReader(&reader.Reader, directory)
}

func unzipFromReader(reader *zip.Reader, directory string) error {
	for _, file := range reader.File {
		filePath := filepath.Join(directory, filepath.FromSlash(path.Clean(file.Name)))
		// https://snyk.io/research/zip-slip-vulnerability#go
		if !strings.HasPrefix(filePath, filepath.Clean(directory)+string(os.PathSeparator)) {
			return errors.Errorf("%s illegal file path", file.Name)
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(filePath, os.ModePerm); err != nil {
				return errors.Wrapf(err, "could not create directory %s", filePath)
			}
			continue
		}
		logrus.Debugf("Unpacking %s", filePath)
		if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
			return errors.Wrapf(err, "could not ensure directory of %s", filePath)
		}
		if err := extractFile(file, filePath); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(file *zip.File, filePath string) error {
	outFile, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return errors.Wrapf(err, "could not create file %s", filePath)
	}
	defer outFile.Close()
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(outFile, rc)
	return errors.Wrap(err, "could not write file")
}
