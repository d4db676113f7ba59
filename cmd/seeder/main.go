package main

import (
	"github.com/joho/godotenv"

	"bookmarket-backend/cmd/seeder/commands"
)

func main() {
	_ = godotenv.Load()
	commands.Execute()
}
