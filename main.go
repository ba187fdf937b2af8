package main

import "github.com/fakeyudi/retrobuddy/cmd"

func main() {
	cmd.Execute()
}
