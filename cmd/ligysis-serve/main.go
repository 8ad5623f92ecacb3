// cmd/ligysis-serve/main.go
package main

import (
	"ligysis/internal/appshell"
	"ligysis/internal/serveapp"
)

func main() { appshell.MainService(serveapp.RunContext) }
