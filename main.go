package main

import "github.com/arifwid/blog-management/cmd"

func main() {
	cmd.Execute()
}
