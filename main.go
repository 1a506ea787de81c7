package main

import "github.com/dsalens/dsalens/cmd"

func main() {
	cmd.Execute()
}
