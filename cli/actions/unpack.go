package actions

import (
	"fmt"
	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/arthur-project/arthur-model-contracts/util/zipdir"
)

// Unpack arguments
type UnpackArguments struct {
	ZipFile   string
	Directory string
}

// Unpacks a zip file into a package directory and resolves the result.
func UnpackBundle(args *UnpackArguments) error {
	if err := zipdir.UnzipDirectory(args.ZipFile, args.Directory); err != nil {
		return err
	}
	bundle, err := serving.LoadBundle(args.Directory)
	if err != nil {
		return err
	}
	fmt.Printf("Unpacked %s into %s\n", formatBundleName(bundle), args.Directory)
	return nil
}
