package main

import "devserver/cmd"

func main() {
	cmd.Execute()
}
