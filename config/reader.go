package config

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Read tokenizes the directives in r into a map of name to value.
//
// Blank lines and lines starting with "#" are skipped.
// A name without a value maps to "".
// The last of duplicate names wins.
func Read(r io.Reader) (map[string]string, error) {
	directives := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value := line, ""
		if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
			key, value = line[:i], strings.TrimSpace(line[i:])
		}

		directives[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return directives, nil
}
