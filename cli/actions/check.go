package actions

import (
	"fmt"
	"github.com/arthur-project/arthur-model-contracts/serving"
)

// Check arguments
type CheckArguments struct {
	Directory string
	// if set, the model artifact content is checked against its name
	Content bool
}

func CheckBundle(args *CheckArguments) error {
	bundle, err := serving.LoadBundle(args.Directory)
	if err != nil {
		return err
	}
	if args.Content {
		if _, err := bundle.Model.SniffFormat(); err != nil {
			return err
		}
	}
	fmt.Printf("OK %s\n", formatBundleName(bundle))
	fmt.Printf("Model: %s (%s, %d bytes)\n", bundle.Model.Name, bundle.Model.Format, bundle.Model.Size)
	for _, name := range bundle.Unlisted {
		fmt.Printf("Warning: %s is not listed in %s\n", name, serving.DeployConfigName)
	}
	return nil
}

func formatBundleName(bundle *serving.Bundle) string {
	name := bundle.Config.DeploymentName()
	if name == nil {
		return "<anonymous>"
	}
	return *name
}
