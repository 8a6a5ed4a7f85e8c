package config

import (
	"fmt"

	"github.com/cognicore/hanzimine/pkg/hanzimine/clean"
)

// Loader loads all dictionary files and constructs components
type Loader struct {
	MergeDictPaths []string
	TokenDictPath  string
}

// Components holds all loaded dictionaries
type Components struct {
	Merge  clean.MergeDict
	Tokens []string
}

// Load reads all dictionary files. Merge dictionaries are concatenated in
// the order given.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	for _, path := range l.MergeDictPaths {
		dict, err := LoadMergeDict(path)
		if err != nil {
			return nil, fmt.Errorf("load merge dictionary: %w", err)
		}
		comp.Merge = append(comp.Merge, dict...)
	}

	if l.TokenDictPath != "" {
		tokens, err := LoadTokenDict(l.TokenDictPath)
		if err != nil {
			return nil, fmt.Errorf("load token dictionary: %w", err)
		}
		comp.Tokens = tokens
	}

	return comp, nil
}
