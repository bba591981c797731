package actions

import (
	"fmt"
	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/arthur-project/arthur-model-contracts/util/zipdir"
	"os"
)

// Pack arguments
type PackArguments struct {
	Directory string
	ZipFile   string
}

// Packs a package directory into a zip file. The directory is resolved
// first, broken packages are not packed.
func PackBundle(args *PackArguments) error {
	bundle, err := serving.LoadBundle(args.Directory)
	if err != nil {
		return err
	}
	file, err := os.Create(args.ZipFile)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := zipdir.ZipDirectoryToStream(args.Directory, file); err != nil {
		return err
	}
	fmt.Printf("Packed %s (%d files) into %s\n", formatBundleName(bundle), len(bundle.Files), args.ZipFile)
	return nil
}
