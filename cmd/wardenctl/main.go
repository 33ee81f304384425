package main

import (
	"github.com/mcoot/gamewarden/internal/cli"
)

func main() {
	cli.Execute()
}
