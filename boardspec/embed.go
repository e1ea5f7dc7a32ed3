package boardspec

import (
	"embed"
	"fmt"
)

//go:embed *.yaml
var BoardsFS embed.FS

// LoadEmbedded returns one of the boards shipped with the binary.
func LoadEmbedded(name string) (*Board, error) {
	data, err := BoardsFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("boardspec: read embedded %s: %w", name, err)
	}
	return Parse(data)
}

// LoadDefault returns the built-in scratch board.
func LoadDefault() (*Board, error) {
	return LoadEmbedded("default.yaml")
}
