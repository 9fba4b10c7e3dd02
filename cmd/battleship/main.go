package main

import (
	"github.com/flotilla/battleship-go/internal/cli"
)

func main() {
	cli.Execute()
}
