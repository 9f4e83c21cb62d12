package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// loadDotEnv exports the variables of the given .env file into the process
// environment. Variables that are already set are left untouched, so the
// real environment always wins over the file. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s file: %w", path, err)
	}

	return nil
}
