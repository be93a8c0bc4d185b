package handler

import (
	"encoding/json"
	"fmt"
)

// VAPI sends tool calls in more than one payload shape depending on how the
// tool is registered on their side. Two are recognized here:
//
// Shape A (nested):
//
//	{"message": {"toolCalls": [{"id": "...", "function": {"name": "...", "arguments": {...}}}]}}
//
// where "arguments" is either a JSON object or a JSON-encoded string.
//
// Shape B (flat):
//
//	{"toolCallId": "...", "parameters": {...}}
//
// ExtractToolCall normalizes both into a ToolCall. When several tool calls are
// present only the first one is used.
func ExtractToolCall(body []byte) (*ToolCall, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty request body")
	}

	var nested struct {
		Message struct {
			ToolCalls []struct {
				ID       string `json:"id"`
				Function struct {
					Name      string          `json:"name"`
					Arguments json.RawMessage `json:"arguments"`
				} `json:"function"`
			} `json:"toolCalls"`
		} `json:"message"`
	}

	if err := json.Unmarshal(body, &nested); err == nil && len(nested.Message.ToolCalls) > 0 {
		tc := nested.Message.ToolCalls[0]
		if tc.ID == "" {
			return nil, fmt.Errorf("tool call is missing an id")
		}
		args, err := decodeArguments(tc.Function.Arguments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tool call arguments: %v", err)
		}
		return &ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		}, nil
	}

	var flat struct {
		ToolCallID string                 `json:"toolCallId"`
		Parameters map[string]interface{} `json:"parameters"`
	}

	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %v", err)
	}
	if flat.ToolCallID == "" {
		return nil, fmt.Errorf("unrecognized payload shape: no toolCalls and no toolCallId")
	}

	args := flat.Parameters
	if args == nil {
		args = map[string]interface{}{}
	}
	return &ToolCall{
		ID:        flat.ToolCallID,
		Arguments: args,
	}, nil
}

// decodeArguments handles the two encodings VAPI uses for function arguments:
// an inline JSON object, or the object serialized into a JSON string.
func decodeArguments(raw json.RawMessage) (map[string]interface{}, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]interface{}{}, nil
	}

	var args map[string]interface{}
	if err := json.Unmarshal(raw, &args); err == nil {
		return args, nil
	}

	// Arguments came as a string: unwrap, then parse the inner JSON
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil, fmt.Errorf("arguments are neither an object nor a string")
	}
	if err := json.Unmarshal([]byte(inner), &args); err != nil {
		return nil, fmt.Errorf("arguments string is not valid JSON: %v", err)
	}
	return args, nil
}

// BindArguments re-marshals a normalized argument map into a typed args struct
func BindArguments(args map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to bind arguments: %v", err)
	}
	return nil
}

// NewToolCallResponse wraps a result in the fixed envelope VAPI expects.
// Structured results are JSON-encoded into the result string.
func NewToolCallResponse(toolCallID string, result interface{}) ToolCallResponse {
	var resultStr string
	switch v := result.(type) {
	case string:
		resultStr = v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			resultStr = fmt.Sprintf("%v", v)
		} else {
			resultStr = string(data)
		}
	}

	return ToolCallResponse{
		Results: []ToolCallResult{
			{ToolCallID: toolCallID, Result: resultStr},
		},
	}
}
