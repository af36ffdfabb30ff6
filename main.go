package main

import "github.com/cutlistlab/cabplan/cmd"

func main() {
	cmd.Execute()
}
