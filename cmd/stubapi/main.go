package main

import (
	"log"
	"net/http"
	"os"

	"github.com/marcomartinez12/playzone/internal/stubapi"
)

func main() {
	port := getEnv("STUBAPI_PORT", "8080")
	token := getEnv("STUBAPI_TOKEN", "dev-token")

	server := stubapi.NewServer(token)

	log.Printf("stub API listening on :%s (bearer token %q)", port, token)
	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		log.Fatalf("stub API failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
