package main

import "github.com/dt-pm-tools/confluence-md/cmd"

func main() {
	cmd.Execute()
}
