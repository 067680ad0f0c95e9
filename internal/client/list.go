package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList accepts both collection shapes the backend produces: a bare
// JSON array, or an object whose "content" field is an array (paged
// responses). Anything else is ErrMalformedResponse.
func decodeList[T any](body []byte) ([]T, error) {
	raw := bytes.TrimSpace(body)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	switch raw[0] {
	case '[':
	case '{':
		var env struct {
			Content json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		content := bytes.TrimSpace(env.Content)
		if len(content) == 0 || content[0] != '[' {
			return nil, fmt.Errorf("%w: object without a content array", ErrMalformedResponse)
		}
		raw = content
	default:
		return nil, fmt.Errorf("%w: expected array or object", ErrMalformedResponse)
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return items, nil
}
