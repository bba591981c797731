package actions

import (
	"fmt"
	"github.com/arthur-project/arthur-model-contracts/serving"
	"github.com/arthur-project/arthur-model-contracts/util/yaml"
	"github.com/olekukonko/tablewriter"
	"os"
	"strconv"
)

// Inspect arguments
type InspectArguments struct {
	Directory string
	Config    bool
	NoTable   bool
}

func InspectBundle(args *InspectArguments) error {
	bundle, err := serving.LoadBundle(args.Directory)
	if err != nil {
		return err
	}
	if args.NoTable {
		inspectPlain(bundle)
	} else {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"File", "Role", "Format", "Size"})
		table.SetCaption(true, fmt.Sprintf("%d Files in %s", len(bundle.Files), formatBundleName(bundle)))
		table.SetBorder(false)
		for _, file := range bundle.Files {
			table.Append([]string{
				file.Name,
				string(file.Role),
				formatFileFormat(bundle, file),
				formatFileSize(file),
			})
		}
		table.Render()
		printMetaVariables(bundle.Config.MetaVariables())
	}
	if args.Config {
		asYaml, err := yaml.JsonToYaml(bundle.Config.Json())
		if err != nil {
			return err
		}
		fmt.Printf("Configuration:\n%s", asYaml)
	}
	return nil
}

func inspectPlain(bundle *serving.Bundle) {
	for _, file := range bundle.Files {
		fmt.Printf("%s\t%s\t%s\t%s\n", file.Name, file.Role, formatFileFormat(bundle, file), formatFileSize(file))
	}
	for _, variable := range bundle.Config.MetaVariables() {
		fmt.Printf("%s\t%s\t%s\n", variable.Name, string(variable.JsonValue), strconv.FormatBool(variable.Fix))
	}
}

func printMetaVariables(variables serving.MetaVariables) {
	if len(variables) == 0 {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Meta Variable", "Value", "Fix"})
	table.SetBorder(false)
	for _, variable := range variables {
		table.Append([]string{
			variable.Name,
			string(variable.JsonValue),
			strconv.FormatBool(variable.Fix),
		})
	}
	table.Render()
}

func formatFileFormat(bundle *serving.Bundle, file serving.BundleFile) string {
	if file.Role == serving.RoleModel && bundle.Model != nil {
		return string(bundle.Model.Format)
	}
	return ""
}

func formatFileSize(file serving.BundleFile) string {
	stat, err := os.Stat(file.Path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d", stat.Size())
}
