// cmd/capdash/main.go
package main

import (
	capdash "github.com/mwiater/capdash/internal/commands"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = capdash.SetVersionInfo
	executeCmd     = capdash.Execute
)

// main injects build metadata and hands control to the cobra root command.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
