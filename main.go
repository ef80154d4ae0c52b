package main

import "pos-kemasan/cmd"

func main() {
	cmd.Execute()
}
