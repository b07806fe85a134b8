package main

import "github.com/javierperezm/fitnesspark-ical/internal/cli"

func main() {
	cli.Execute()
}
