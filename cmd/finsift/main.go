package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/finsift-dev/finsift/internal/commands"
)

func main() {
	// Credentials (TWILIO_*, OPENAI_API_KEY) may live in a local .env.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
