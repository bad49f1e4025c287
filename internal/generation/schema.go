package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const responseSchemaJSON = `{
  "type": "object",
  "required": ["cover_letter"],
  "properties": {
    "cover_letter": {"type": "string"}
  }
}`

var responseSchema = jsonschema.MustCompileString("cover_letter_response.json", responseSchemaJSON)

// decodeResponse validates body against the response schema and returns the
// cover letter. The body must hold exactly one JSON value.
func decodeResponse(body []byte) (string, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", &DecodeError{Err: fmt.Errorf("parse json: %w", err)}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return "", &DecodeError{Err: errors.New("parse json: unexpected data after top-level value")}
	}
	if err := responseSchema.Validate(v); err != nil {
		return "", &DecodeError{Err: err}
	}
	letter, _ := v.(map[string]any)["cover_letter"].(string)
	return letter, nil
}
