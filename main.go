package main

import "github.com/dt-pm-tools/testcase-pipeline/cmd"

func main() {
	cmd.Execute()
}
