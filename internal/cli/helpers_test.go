package cli

import (
	"os"

	"pokelearn/internal/config"
)

func newTestConfig() *config.Config {
	return &config.Config{
		DatabaseType:     "sqlite",
		DatabasePath:     ":memory:",
		SanityDataset:    "production",
		SanityAPIVersion: "2024-01-01",
		PokeAPIBaseURL:   "http://127.0.0.1:0",
		LogMode:          "dev",
	}
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}
