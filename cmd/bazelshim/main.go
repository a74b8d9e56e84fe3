package main

import (
	shimcmd "github.com/victoralfred/bazelshim/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	shimcmd.SetVersionInfo(version, commit)
	shimcmd.Execute()
}
