package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemas    map[string]*jsonschema.Schema
	schemaErr  error
)

func compiled(name string) (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schemas = map[string]*jsonschema.Schema{}
		names := []string{
			"scenario.schema.json",
			"subscribe.schema.json",
			"action.schema.json",
			"result.schema.json",
		}
		c := jsonschema.NewCompiler()
		for _, n := range names {
			raw, err := schemaFS.ReadFile("schemas/" + n)
			if err != nil {
				schemaErr = err
				return
			}
			if err := c.AddResource(n, bytes.NewReader(raw)); err != nil {
				schemaErr = fmt.Errorf("schema %s: %w", n, err)
				return
			}
		}
		for _, n := range names {
			s, err := c.Compile(n)
			if err != nil {
				schemaErr = fmt.Errorf("compile %s: %w", n, err)
				return
			}
			schemas[n] = s
		}
	})
	if schemaErr != nil {
		return nil, schemaErr
	}
	return schemas[name], nil
}

// ValidateScenarioDoc checks a decoded scenario document (JSON-compatible
// values) against the scenario schema.
func ValidateScenarioDoc(doc any) error {
	s, err := compiled("scenario.schema.json")
	if err != nil {
		return err
	}
	return s.Validate(doc)
}

// ValidateScenarioBytes checks a raw YAML or JSON scenario file. YAML is
// normalized through a JSON round trip so number types match what the
// schema validator expects.
func ValidateScenarioBytes(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%s: %w", ErrBadScenario, err)
	}
	jb, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrBadScenario, err)
	}
	var norm any
	if err := json.Unmarshal(jb, &norm); err != nil {
		return fmt.Errorf("%s: %w", ErrBadScenario, err)
	}
	if err := ValidateScenarioDoc(norm); err != nil {
		return fmt.Errorf("%s: %w", ErrBadScenario, err)
	}
	return nil
}
