package main

import (
	"github.com/joho/godotenv"

	"volwatch/internal/cli"
)

func main() {
	// Local development convenience; real deployments pass env directly.
	_ = godotenv.Load(".env")

	cli.Execute()
}
