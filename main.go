package main

import (
	"nathanbeddoewebdev/pdnsctl/cmd"

	_ "github.com/breml/rootcerts"
)

func main() {
	cmd.Execute()
}
