package config

import "github.com/joho/godotenv"

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already set in the environment win; missing files are ignored.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		_ = godotenv.Load(path)
	}
}
