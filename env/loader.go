package env

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadFile reads a dotenv file and returns its entries as sorted KEY=VALUE
// strings. The current process environment is neither read nor modified.
func LoadFile(path string) ([]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return MapToSlice(values), nil
}

// ParseKeyValueFormat parses dotenv-style content (KEY=VALUE lines, comments,
// optional export prefix and quoting) into sorted KEY=VALUE strings.
func ParseKeyValueFormat(data []byte) ([]string, error) {
	values, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env content: %w", err)
	}
	return MapToSlice(values), nil
}

// LoadFiles loads each file in order and merges them; later files win.
func LoadFiles(paths ...string) ([]string, error) {
	lists := make([][]string, 0, len(paths))
	for _, path := range paths {
		entries, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		lists = append(lists, entries)
	}
	return Merge(lists...), nil
}

// Inherited returns the caller's own environment, for handles that should
// start from it explicitly.
func Inherited() []string {
	return os.Environ()
}
