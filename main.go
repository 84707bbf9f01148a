package main

import "github.com/nakachan-ing/expert-notes/cmd"

func main() {
	cmd.Execute()
}
