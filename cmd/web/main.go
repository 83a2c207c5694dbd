package main

import (
	"aimtrainer/internal/server"
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: error loading .env file: %v", err)
	}
	if err := server.Run(); err != nil {
		log.Fatal(err.Error())
	}
}
