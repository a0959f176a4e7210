package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/clusteriq/assistant/internal/domain"
)

// MissingParameterErr reports a required input field the model left out.
type MissingParameterErr struct {
	Param string
}

func (e *MissingParameterErr) Error() string {
	return fmt.Sprintf("required parameter '%s' is missing", e.Param)
}

// InvalidParameterTypeErr reports an input field whose JSON type does not
// match its declared type.
type InvalidParameterTypeErr struct {
	Param    string
	Expected string
}

func (e *InvalidParameterTypeErr) Error() string {
	return fmt.Sprintf("parameter '%s' must be of type %s", e.Param, e.Expected)
}

// ValidateActionInput checks the raw JSON arguments of an action call
// against the action's declared input shape before execution: the payload
// must be one JSON object, required fields must be present and every
// present field must match its declared primitive type. Fields outside the
// declared shape are rejected.
func ValidateActionInput(arguments string, shape domain.AssistantActionInput) error {
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}

	decoder := json.NewDecoder(strings.NewReader(arguments))
	decoder.UseNumber()

	var params map[string]any
	if err := decoder.Decode(&params); err != nil {
		return fmt.Errorf("arguments are not a JSON object: %w", err)
	}
	var extra any
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return errors.New("arguments must contain a single JSON object")
	}

	for name, field := range shape.Fields {
		value, present := params[name]
		if !present {
			if field.Required {
				return &MissingParameterErr{Param: name}
			}
			continue
		}
		if value == nil {
			// Explicit null counts as absent.
			if field.Required {
				return &MissingParameterErr{Param: name}
			}
			continue
		}
		if !matchesType(value, field.Type) {
			return &InvalidParameterTypeErr{Param: name, Expected: field.Type}
		}
	}

	for name := range params {
		if _, known := shape.Fields[name]; !known {
			return domain.NewValidationErr(fmt.Sprintf("unknown parameter '%s'", name))
		}
	}

	return nil
}

func matchesType(value any, fieldType string) bool {
	switch fieldType {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "number":
		_, ok := value.(json.Number)
		return ok
	case "integer":
		num, ok := value.(json.Number)
		if !ok {
			return false
		}
		if _, err := num.Int64(); err == nil {
			return true
		}
		f, err := num.Float64()
		return err == nil && f == math.Trunc(f)
	default:
		return true
	}
}

func validationErrCode(err error) string {
	var missing *MissingParameterErr
	if errors.As(err, &missing) {
		return "missing_parameter"
	}
	var invalidType *InvalidParameterTypeErr
	if errors.As(err, &invalidType) {
		return "invalid_parameter_type"
	}
	return "invalid_arguments"
}
