package main

import "github.com/chippy-vm/chippy/cmd"

func main() {
	cmd.Execute()
}
