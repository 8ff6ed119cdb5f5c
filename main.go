package main

import (
	"runtime/debug"

	"library-catalog/internal/cmd"
)

// Version is set with -ldflags "-X main.Version=<version>" on release builds.
var Version = ""

func main() {
	cmd.SetVersion(buildVersionString())
	cmd.Execute()
}

func buildVersionString() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
