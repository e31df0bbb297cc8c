package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/tigerrt/internal/model"
)

// Plan is a named sequence of primitive calls.
type Plan struct {
	// Name is a display name for the plan.
	Name string `json:"name" yaml:"name"`

	// Steps are executed in order.
	Steps []Step `json:"steps" yaml:"steps"`
}

// Step is a single primitive call.
type Step struct {
	// Call is the binding name or linker label to invoke.
	Call string `json:"call" yaml:"call"`

	// Args are the call arguments. Each element is an integer literal, a
	// string literal, or a "$slot" reference to an earlier result.
	// JSON numbers decode as float64 and YAML integers as int; both are
	// accepted for int parameters.
	Args []any `json:"args,omitempty" yaml:"args,omitempty"`

	// Bind names the slot that receives the call's result.
	Bind string `json:"bind,omitempty" yaml:"bind,omitempty"`
}

// Load reads a call plan from path. The format is chosen by extension:
// .yaml/.yml for YAML, .json/.jsonc for JSONC.
//
// Returns a CLIError with ExitPlanNotFound if the file does not exist and
// ExitInvalidPlan if it cannot be parsed.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitPlanNotFound,
				fmt.Sprintf("plan not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	var p *Plan
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		p, err = ParseYAML(data)
	case ".json", ".jsonc":
		p, err = ParseJSONC(data)
	default:
		return nil, model.NewCLIError(model.ExitInvalidPlan,
			fmt.Sprintf("unsupported plan format %q (valid: .yaml, .yml, .json, .jsonc)", ext))
	}
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidPlan,
			fmt.Sprintf("failed to parse plan %s", path), err)
	}
	return p, nil
}

// ParseYAML decodes a YAML plan. Unknown fields are rejected.
func ParseYAML(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseJSONC strips comments and trailing commas, then decodes the plan.
// Unknown fields are rejected.
func ParseJSONC(data []byte) (*Plan, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()

	var p Plan
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
