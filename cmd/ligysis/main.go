// cmd/ligysis/main.go
package main

import (
	"ligysis/internal/app"
	"ligysis/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
