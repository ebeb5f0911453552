package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a local .env file into the process environment so viper's
// AutomaticEnv picks the values up. Missing files are not fatal.
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Error loading .env: %v", err.Error())
	}
}
