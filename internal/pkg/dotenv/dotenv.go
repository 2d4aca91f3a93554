package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const envFile = ".env"

// Load подгружает .env, если файл есть, и применяет флаг -port поверх PORT.
// Возвращает false, если .env не найден и используются только переменные окружения.
func Load() (bool, error) {
	loaded := true
	if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
		loaded = false
	} else if err := godotenv.Load(envFile); err != nil {
		return false, fmt.Errorf("load %s: %w", envFile, err)
	}

	var portFlag string
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flag.Parse()

	if portFlag != "" {
		err := os.Setenv("PORT", portFlag)
		if err != nil {
			return loaded, fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return loaded, nil
}
