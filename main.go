package main

import "remote-loader/cmd"

func main() {
	cmd.Execute()
}
