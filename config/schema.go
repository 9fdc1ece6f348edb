package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

var schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/dhamidi/jnigen/schemas/config/v1",
  "title": "jnigen configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "package_root": { "type": "string", "minLength": 1 },
    "include": {
      "type": "array",
      "items": { "type": "string", "minLength": 1 }
    },
    "codegen": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "method_naming_style": {
          "type": "string",
          "enum": ["java", "java-short-signature", "java-long-signature", "go", "go-short-signature", "go-long-signature"]
        },
        "static_env": { "type": "string", "enum": ["explicit", "implicit"] }
      }
    },
    "ignore": {
      "type": "array",
      "items": { "$ref": "#/$defs/rule" }
    },
    "rename": {
      "type": "array",
      "items": {
        "allOf": [
          { "$ref": "#/$defs/rule" },
          { "required": ["to"] }
        ]
      }
    },
    "types": {
      "type": "object",
      "propertyNames": { "pattern": "^[^./;\\[]+(/[^./;\\[]+)*$" },
      "additionalProperties": { "type": "string", "pattern": "^[^\\s]+\\.[A-Za-z_][A-Za-z0-9_]*$" }
    },
    "docs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["prefix", "url"],
        "additionalProperties": false,
        "properties": {
          "prefix": { "type": "string" },
          "url": { "type": "string", "minLength": 1 }
        }
      }
    }
  },
  "$defs": {
    "rule": {
      "type": "object",
      "required": ["class"],
      "properties": {
        "class": { "type": "string", "minLength": 1 },
        "method": { "type": "string", "minLength": 1 },
        "signature": { "type": "string", "pattern": "^\\(" },
        "to": { "type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$" }
      },
      "dependentRequired": { "signature": ["method"] },
      "unevaluatedProperties": false
    }
  }
}`

var compiledSchema *jsonschema.Schema

func init() {
	var schemaDoc any
	if err := json.Unmarshal([]byte(schemaJSON), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to decode schema JSON: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("config.json", schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add schema resource: %v", err))
	}
	var err error
	compiledSchema, err = c.Compile("config.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema: %v", err))
	}
}

// ValidateSchema validates raw YAML against the configuration schema.
func ValidateSchema(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := compiledSchema.Validate(toJSON(raw)); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// toJSON converts yaml.v3 values into the shapes the validator expects.
func toJSON(v any) any {
	switch v := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for k, val := range v {
			result[k] = toJSON(val)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = toJSON(val)
		}
		return result
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return v
	}
}
