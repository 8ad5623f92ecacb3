// cmd/ligysis-consvar/main.go
package main

import (
	"ligysis/internal/appshell"
	"ligysis/internal/consvarapp"
)

func main() { appshell.Main(consvarapp.RunContext) }
