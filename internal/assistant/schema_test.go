package assistant

import (
	"testing"

	"github.com/clusteriq/assistant/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testShape() domain.AssistantActionInput {
	return domain.AssistantActionInput{
		Type: "object",
		Fields: map[string]domain.AssistantActionField{
			"field": {Type: "string", Required: true},
			"limit": {Type: "integer", Required: true},
			"order": {Type: "string", Required: false},
			"dry":   {Type: "boolean", Required: false},
			"ratio": {Type: "number", Required: false},
		},
	}
}

func TestValidateActionInput(t *testing.T) {
	tests := map[string]struct {
		arguments   string
		expectedErr string
	}{
		"valid-required-only": {
			arguments: `{"field":"name","limit":5}`,
		},
		"valid-all-fields": {
			arguments: `{"field":"name","limit":5,"order":"desc","dry":true,"ratio":0.5}`,
		},
		"integer-as-float-without-fraction": {
			arguments: `{"field":"name","limit":5.0}`,
		},
		"missing-required": {
			arguments:   `{"field":"name"}`,
			expectedErr: "required parameter 'limit' is missing",
		},
		"null-required": {
			arguments:   `{"field":null,"limit":5}`,
			expectedErr: "required parameter 'field' is missing",
		},
		"wrong-string-type": {
			arguments:   `{"field":12,"limit":5}`,
			expectedErr: "parameter 'field' must be of type string",
		},
		"fractional-integer": {
			arguments:   `{"field":"name","limit":2.5}`,
			expectedErr: "parameter 'limit' must be of type integer",
		},
		"integer-as-string": {
			arguments:   `{"field":"name","limit":"5"}`,
			expectedErr: "parameter 'limit' must be of type integer",
		},
		"wrong-boolean-type": {
			arguments:   `{"field":"name","limit":5,"dry":"yes"}`,
			expectedErr: "parameter 'dry' must be of type boolean",
		},
		"unknown-parameter": {
			arguments:   `{"field":"name","limit":5,"page":1}`,
			expectedErr: "unknown parameter 'page'",
		},
		"not-an-object": {
			arguments:   `[1,2]`,
			expectedErr: "arguments are not a JSON object",
		},
		"trailing-value": {
			arguments:   `{"field":"name","limit":5}{}`,
			expectedErr: "arguments must contain a single JSON object",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateActionInput(tc.arguments, testShape())
			if tc.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.expectedErr)
		})
	}
}

func TestValidateActionInputEmptyArguments(t *testing.T) {
	err := ValidateActionInput("", domain.AssistantActionInput{Type: "object"})
	assert.NoError(t, err)

	err = ValidateActionInput("  ", testShape())
	var missing *MissingParameterErr
	assert.ErrorAs(t, err, &missing)
}
