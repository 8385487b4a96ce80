package main

import "github.com/showdeck/showdeck/internal/cmd"

func main() {
	cmd.Execute()
}
