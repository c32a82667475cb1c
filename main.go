package main

import "github.com/mwicaksana/construction-management/cmd"

func main() {
	cmd.Execute()
}
