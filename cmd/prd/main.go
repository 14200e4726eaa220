package main

import "github.com/emrgen/prd/cmd"

func main() {
	cmd.Execute()
}
