// internal/domain/homework/response.go
package homework

import (
	"encoding/json"
	"math"
)

// Response is a validated answer of the homework statuses API.
type Response struct {
	Homeworks   []any // newest first
	CurrentDate int64
}

// ValidateResponse checks the shape of a decoded API answer before any field is consumed.
func ValidateResponse(raw any) (*Response, error) {
	body, ok := raw.(map[string]any)
	if !ok {
		return nil, newError(KindTypeMismatch, "response is not an object, got %T", raw)
	}

	rawHomeworks, ok := body["homeworks"]
	if !ok {
		return nil, newError(KindMalformedResponse, `no "homeworks" key in response`)
	}
	rawDate, ok := body["current_date"]
	if !ok {
		return nil, newError(KindMalformedResponse, `no "current_date" key in response`)
	}

	homeworks, ok := rawHomeworks.([]any)
	if !ok {
		return nil, newError(KindTypeMismatch, `"homeworks" is not a list, got %T`, rawHomeworks)
	}
	currentDate, ok := toInt64(rawDate)
	if !ok {
		return nil, newError(KindTypeMismatch, `"current_date" is not an integer: %v`, rawDate)
	}

	return &Response{Homeworks: homeworks, CurrentDate: currentDate}, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
