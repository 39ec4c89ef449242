package main

import "github.com/shapestone/shape-h1/cmd/h1dump/cmd"

func main() {
	cmd.Execute()
}
