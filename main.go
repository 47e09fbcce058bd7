package main

import (
	"github.com/caas-team/healthprobe/cmd"
)

// Version is the current version of healthprobe
// It is set at build time by using -ldflags "-X main.version=x.x.x"
var version = "1.0"

func main() {
	cmd.Execute(version)
}
