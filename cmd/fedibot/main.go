package main

import "github.com/tffedibot/fedibot/internal/cli"

func main() {
	cli.Execute()
}
