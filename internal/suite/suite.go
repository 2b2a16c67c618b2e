// Package suite loads YAML suite files describing custom test-case
// batches for a registered challenge.
package suite

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"qubench/internal/model"
)

//go:embed suite.schema.json
var schemaData []byte

var (
	suiteSchema *jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// Suite is a named batch of test cases for one challenge. A nil
// Tolerance means the challenge's own tolerance applies.
type Suite struct {
	Name      string           `yaml:"name"`
	Challenge string           `yaml:"challenge"`
	Tolerance *model.Tolerance `yaml:"tolerance"`
	Cases     []model.TestCase `yaml:"cases"`
}

func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal suite schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("suite.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add suite schema resource: %w", err)
			return
		}

		suiteSchema, err = compiler.Compile("suite.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile suite schema: %w", err)
		}
	})

	return compileErr
}

// Validate checks YAML suite data against the embedded schema.
func Validate(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	// The schema validator wants JSON-shaped values, so round-trip
	// through encoding/json to normalize YAML's map types.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalize suite document: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("normalize suite document: %w", err)
	}

	if err := suiteSchema.Validate(v); err != nil {
		return fmt.Errorf("suite validation failed: %w", err)
	}
	return nil
}

// Parse validates and decodes a YAML suite document.
func Parse(data []byte) (*Suite, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode suite: %w", err)
	}
	return &s, nil
}

// Load reads and parses a suite file from disk.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}
	return Parse(data)
}
