package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/hanzimine/pkg/hanzimine/clean"
	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
)

// LoadMergeDict loads character mappings from a file
// Format: pattern<whitespace>replacement, one mapping per line
func LoadMergeDict(path string) (clean.MergeDict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var dict clean.MergeDict
	for i, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %s line %d: expected 2 fields, got %d",
				internalerr.ErrMalformedDict, path, i+1, len(fields))
		}
		dict = append(dict, clean.Mapping{Pattern: fields[0], Replacement: fields[1]})
	}
	return dict, nil
}

// LoadTokenDict loads segmentation tokens from a file
// Format: one token per line, # starts a comment line
func LoadTokenDict(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tokens []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, line)
	}
	return tokens, nil
}
