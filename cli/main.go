package main

import (
	"flag"
	"github.com/arthur-project/arthur-model-contracts/cli/actions"
	"github.com/arthur-project/arthur-model-contracts/cli/cmd"
	"github.com/sirupsen/logrus"
	"os"
)

// Injected by the Makefile
var AppVersion string

func main() {
	args, err := cmd.ParseArguments(os.Args, AppVersion)
	if err != nil {
		if err == cmd.MissingCommand || err == flag.ErrHelp {
			os.Exit(0)
		}
		println(err.Error())
		os.Exit(1)
	}
	if args.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if args.Check != nil {
		err = actions.CheckBundle(args.Check)
	}
	if args.Inspect != nil {
		err = actions.InspectBundle(args.Inspect)
	}
	if args.Pack != nil {
		err = actions.PackBundle(args.Pack)
	}
	if args.Unpack != nil {
		err = actions.UnpackBundle(args.Unpack)
	}

	if err != nil {
		println("Error", err.Error())
		os.Exit(3)
	}
}
