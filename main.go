package main

import "colcat/cmd"

func main() {
	cmd.Execute()
}
