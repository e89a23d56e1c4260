package main

import "github.com/brequin/brequin/tracker/cmd"

func main() {
	cmd.Execute()
}
