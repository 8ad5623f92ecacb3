// cmd/ligysis-sites/main.go
package main

import (
	"ligysis/internal/appshell"
	"ligysis/internal/sitesapp"
)

func main() { appshell.Main(sitesapp.RunContext) }
