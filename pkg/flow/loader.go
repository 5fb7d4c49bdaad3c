package flow

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load decodes a YAML flow definition describing the root process group
func Load(r io.Reader) (*Graph, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	root := &ProcessGroup{}
	if err := decoder.Decode(root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode flow: %w", err)
	}
	if root.ID() == "" {
		root.Identifier = "root"
	}

	return NewGraph(root)
}

// Parse decodes a YAML flow definition held in memory
func Parse(data []byte) (*Graph, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile reads and decodes a YAML flow definition from disk
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open flow file: %w", err)
	}
	defer f.Close()

	graph, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return graph, nil
}
