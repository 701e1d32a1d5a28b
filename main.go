package main

import "terraform-archviz/cmd"

func main() {
	cmd.Execute()
}
