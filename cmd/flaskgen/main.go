package main

import "github.com/dogeorg/flaskgen/cmd/flaskgen/cmd"

func main() {
	cmd.Execute()
}
