package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// loadEnv sets the environment variables in the files not already set.
// Missing files are skipped.
func loadEnv(files ...string) error {
	var pe *fs.PathError
	if err := godotenv.Load(files...); err != nil && !errors.As(err, &pe) {
		return fmt.Errorf("cannot load env: %w", err)
	}

	return nil
}
