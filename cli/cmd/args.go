package cmd

import (
	"errors"
	"github.com/arthur-project/arthur-model-contracts/cli/actions"
	"github.com/urfave/cli"
)

type Arguments struct {
	Debug bool

	// if set the command is requested
	Check   *actions.CheckArguments
	Inspect *actions.InspectArguments
	Pack    *actions.PackArguments
	Unpack  *actions.UnpackArguments
}

var MissingCommand = errors.New("missing command")
var MissingArgument = errors.New("missing argument")

// Parse arguments. Error messages are already printed.
func ParseArguments(argv []string, appVersion string) (*Arguments, error) {
	var args = Arguments{}
	app := cli.NewApp()
	app.Name = "arthur-bundle"
	app.Description = "Arthur model package tool"
	app.Version = appVersion
	app.Usage = "Check, inspect and pack model packages"
	app.UseShortOptionHandling = true

	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
	}

	app.Commands = []cli.Command{
		{
			Name:      "check",
			Usage:     "Check a model package directory",
			ArgsUsage: "<directory>",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "content,c", Usage: "Also check the artifact content against its name"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return MissingArgument
				}
				args.Check = &actions.CheckArguments{}
				args.Check.Directory = c.Args().Get(0)
				args.Check.Content = c.Bool("content")
				return nil
			},
		},
		{
			Name:      "inspect",
			Usage:     "Show the resolved files of a model package",
			ArgsUsage: "<directory>",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "config,c", Usage: "Also print the effective configuration"},
				cli.BoolFlag{Name: "noTable", Usage: "Render pure text instead of table"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return MissingArgument
				}
				args.Inspect = &actions.InspectArguments{}
				args.Inspect.Directory = c.Args().Get(0)
				args.Inspect.Config = c.Bool("config")
				args.Inspect.NoTable = c.Bool("noTable")
				return nil
			},
		},
		{
			Name:      "pack",
			Usage:     "Pack a model package directory into a zip file",
			ArgsUsage: "<directory> <zipFile>",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					return MissingArgument
				}
				args.Pack = &actions.PackArguments{}
				args.Pack.Directory = c.Args().Get(0)
				args.Pack.ZipFile = c.Args().Get(1)
				return nil
			},
		},
		{
			Name:      "unpack",
			Usage:     "Unpack a zip file into a model package directory",
			ArgsUsage: "<zipFile> <directory>",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					return MissingArgument
				}
				args.Unpack = &actions.UnpackArguments{}
				args.Unpack.ZipFile = c.Args().Get(0)
				args.Unpack.Directory = c.Args().Get(1)
				return nil
			},
		},
	}
	app.Before = func(c *cli.Context) error {
		args.Debug = c.GlobalBool("debug")
		return nil
	}
	app.Action = func(c *cli.Context) error {
		cli.ShowAppHelp(c)
		return MissingCommand
	}
	err := app.Run(argv)
	return &args, err
}
