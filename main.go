package main

import (
	"github.com/joho/godotenv"

	"github.com/solgather/solgather/cmd"
)

func main() {
	// Optional .env for SOLGATHER_* settings and provider credentials.
	_ = godotenv.Load()

	cmd.Execute()
}
