package main

import "github.com/davit-sh/davit/internal/cmd"

func main() {
	cmd.Execute()
}
