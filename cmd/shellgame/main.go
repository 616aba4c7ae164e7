package main

import "github.com/mcoot/shellgame-go/internal/cli"

func main() {
	cli.Execute()
}
