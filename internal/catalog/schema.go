package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	reflector "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://chronos/catalog.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Schema returns the JSON schema of the catalog document, reflected from
// the Go types.
func Schema() ([]byte, error) {
	r := reflector.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	return json.MarshalIndent(r.Reflect(&document{}), "", "  ")
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := Schema()
		if err != nil {
			compileErr = fmt.Errorf("reflect schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks raw JSON against the catalog schema.
func validateDocument(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid catalog JSON: %w", err)
	}

	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := s.Validate(parsed); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}
