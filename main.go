package main

import "github.com/gaurav-prasanna/mbz2md/cmd"

func main() {
	cmd.Execute()
}
