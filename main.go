package main

import "github.com/jsphweid/fictadex/cmd"

func main() {
	cmd.Execute()
}
