package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

type format string

const (
	formatJSON format = "json"
	formatYAML format = "yaml"
)

func parseFormat(s string) (format, error) {
	switch f := format(s); f {
	case formatJSON, formatYAML:
		return f, nil
	case "yml":
		return formatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
}

// writeResult encodes v to w. YAML output goes through the JSON form first
// so both formats share the same field names.
func writeResult(w io.Writer, f string, v any) error {
	ff, err := parseFormat(f)
	if err != nil {
		return err
	}
	if ff == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// readPlan loads and validates a plan. YAML plans are accepted as well, so
// a plan written with -o yaml can be fed back in.
func readPlan(stdin io.Reader, path string) (models.TripPlan, error) {
	data, err := readInput(stdin, path)
	if err != nil {
		return models.TripPlan{}, err
	}
	if !json.Valid(data) {
		data, err = yamlToJSON(data)
		if err != nil {
			return models.TripPlan{}, err
		}
	}
	return models.DecodePlan(data)
}

func yamlToJSON(data []byte) ([]byte, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: input is neither JSON nor YAML", models.ErrInvalidShape)
	}
	out, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidShape, err)
	}
	return out, nil
}
