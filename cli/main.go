package main

import (
	"log"

	"github.com/ctemplate/ct/cli/cmd"
	"github.com/ctemplate/ct/cli/util"
	"github.com/ctemplate/ct/cli/version"
)

func main() {
	defer func() {
		// In case the program panics, recover captures the value given to
		// panic and reports it as an internal error.
		if r := recover(); r != nil {
			log.Fatalf(
				"%s", util.InternalError("Unhandled internal error: %s",
					version.GetVersion, r))
		}
	}()

	cmd.InitRoot()
	cmd.Execute()
}
