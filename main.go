package main

import "terraform-modviz/cmd"

func main() {
	cmd.Execute()
}
