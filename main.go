package main

import "github.com/papapumpkin/cutline/cmd"

func main() {
	cmd.Execute()
}
