package main

import "github.com/jsphweid/staffpad/cmd"

func main() {
	cmd.Execute()
}
