// validate.go checks a plan against the binding table before anything runs,
// so a typo in step 7 is reported without executing steps 1 through 6.
package plan

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shinji-kodama/tigerrt/internal/extern"
	"github.com/shinji-kodama/tigerrt/internal/model"
)

// ValidationError represents a specific validation failure in a plan.
type ValidationError struct {
	// Field is the path of the offending field (e.g., "steps[2].args[0]").
	Field string

	// Message describes what's wrong with the field value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("plan validation error: %s: %s", e.Field, e.Message)
}

// slotRegex validates slot names used by bind and "$" references.
var slotRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks every step of p against table. It returns a list of
// validation errors (empty list = valid plan).
//
// Checks performed:
//   - The plan has at least one step
//   - Every call names a bound primitive
//   - Argument counts match the primitive's parameters
//   - Literal arguments have the parameter's type
//   - References name a slot bound by an earlier step, of the right type
//   - Bind names are identifiers and never bind a unit result
func Validate(p *Plan, table *extern.Table) []ValidationError {
	var errs []ValidationError

	if len(p.Steps) == 0 {
		return []ValidationError{{Field: "steps", Message: "plan must contain at least one step"}}
	}

	// slots tracks the static type of every slot bound so far.
	slots := make(map[string]model.Ty)

	for i, step := range p.Steps {
		field := fmt.Sprintf("steps[%d]", i)

		if step.Call == "" {
			errs = append(errs, ValidationError{Field: field + ".call", Message: "call is required"})
			continue
		}
		b, ok := table.Lookup(step.Call)
		if !ok {
			errs = append(errs, ValidationError{
				Field:   field + ".call",
				Message: fmt.Sprintf("unknown primitive %q", step.Call),
			})
			continue
		}

		if len(step.Args) != len(b.Params) {
			errs = append(errs, ValidationError{
				Field:   field + ".args",
				Message: fmt.Sprintf("%s expects %d argument(s), got %d", b.Signature(), len(b.Params), len(step.Args)),
			})
		} else {
			for j, raw := range step.Args {
				argField := fmt.Sprintf("%s.args[%d]", field, j)
				a, err := parseArg(raw, b.Params[j])
				if err != nil {
					errs = append(errs, ValidationError{Field: argField, Message: err.Error()})
					continue
				}
				if a.ref == "" {
					continue
				}
				ty, bound := slots[a.ref]
				switch {
				case !bound:
					errs = append(errs, ValidationError{
						Field:   argField,
						Message: fmt.Sprintf("reference to unbound slot %q", a.ref),
					})
				case ty != b.Params[j]:
					errs = append(errs, ValidationError{
						Field:   argField,
						Message: fmt.Sprintf("slot %q holds %s, parameter wants %s", a.ref, ty, b.Params[j]),
					})
				}
			}
		}

		if step.Bind != "" {
			switch {
			case !slotRegex.MatchString(step.Bind):
				errs = append(errs, ValidationError{
					Field:   field + ".bind",
					Message: fmt.Sprintf("invalid slot name %q", step.Bind),
				})
			case b.Result == model.TyUnit:
				errs = append(errs, ValidationError{
					Field:   field + ".bind",
					Message: fmt.Sprintf("%s returns no value to bind", b.Name),
				})
			default:
				slots[step.Bind] = b.Result
			}
		}
	}

	return errs
}

// JoinErrors folds validation errors into a single error, nil when empty.
func JoinErrors(verrs []ValidationError) error {
	if len(verrs) == 0 {
		return nil
	}
	errs := make([]error, len(verrs))
	for i := range verrs {
		errs[i] = &verrs[i]
	}
	return errors.Join(errs...)
}

// argument is a plan argument after classification: either a reference to
// a slot or a literal value.
type argument struct {
	ref     string
	literal extern.Value
}

// parseArg classifies raw as a "$slot" reference or converts it to a
// literal of type ty.
func parseArg(raw any, ty model.Ty) (argument, error) {
	switch v := raw.(type) {
	case string:
		if strings.HasPrefix(v, "$$") {
			v = v[1:]
		} else if strings.HasPrefix(v, "$") {
			name := v[1:]
			if !slotRegex.MatchString(name) {
				return argument{}, fmt.Errorf("invalid slot reference %q", v)
			}
			return argument{ref: name}, nil
		}
		val, err := extern.ParseValue(ty, v)
		if err != nil {
			return argument{}, err
		}
		return argument{literal: val}, nil
	case int:
		return intArg(int64(v), ty)
	case int64:
		return intArg(v, ty)
	case uint64:
		if v > math.MaxInt64 {
			return argument{}, fmt.Errorf("integer %d out of range", v)
		}
		return intArg(int64(v), ty)
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= -math.MinInt64 {
			return argument{}, fmt.Errorf("%w: %v is not an int", extern.ErrArgType, v)
		}
		return intArg(int64(v), ty)
	default:
		return argument{}, fmt.Errorf("%w: unsupported argument %v (%T)", extern.ErrArgType, raw, raw)
	}
}

func intArg(n int64, ty model.Ty) (argument, error) {
	if ty != model.TyInt {
		return argument{}, fmt.Errorf("%w: integer %d given for %s parameter", extern.ErrArgType, n, ty)
	}
	if n < math.MinInt || n > math.MaxInt {
		return argument{}, fmt.Errorf("integer %d out of range", n)
	}
	return argument{literal: int(n)}, nil
}
