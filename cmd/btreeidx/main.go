package main

import "btreeidx/internal/cli"

func main() {
	cli.Execute()
}
