package main

import "github.com/b97tsk/asyncgen/internal/cli"

func main() {
	cli.Execute()
}
