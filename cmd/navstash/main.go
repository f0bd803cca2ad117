package main

import "github.com/MrSnakeDoc/navstash/internal/cli"

func main() {
	cli.Execute()
}
