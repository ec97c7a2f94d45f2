package main

import "BatchRenamer/cmd"

func main() {
	cmd.Execute()
}
