package main

import "wabbit/cmd"

func main() {
	cmd.Execute()
}
