package slide

import (
	"fmt"
	"os"
)

// ReadInputFile loads a slide input document from disk.
func ReadInputFile(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read input %s: %w", path, err)
	}
	in, err := UnmarshalInput(data)
	if err != nil {
		return Input{}, fmt.Errorf("parse input %s: %w", path, err)
	}
	return in, nil
}

// WriteLayoutFile writes a layout document to disk.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return fmt.Errorf("serialize layout: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile loads a layout document from disk.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	l, err := UnmarshalLayout(data)
	if err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return l, nil
}
