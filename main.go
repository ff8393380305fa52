package main

import "github.com/gorbms/gomor/cmd"

func main() {
	cmd.Execute()
}
