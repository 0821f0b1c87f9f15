package main

import "github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/cmd"

func main() {
	cmd.Execute()
}
