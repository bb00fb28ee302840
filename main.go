package main

import "node-manager/cmd"

func main() {
	cmd.Execute()
}
