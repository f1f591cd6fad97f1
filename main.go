package main

import "schemadiff/cmd"

func main() {
	cmd.Execute()
}
