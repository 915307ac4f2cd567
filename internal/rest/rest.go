package rest

import (
	"fmt"
	"strconv"
)

// ErrorResponse is the JSON body returned for all non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ParseAmount converts a decoded JSON value into a non-negative float.
// Clients historically sent amounts both as numbers and as numeric strings,
// so both are accepted.
func ParseAmount(v any) (float64, error) {
	var amount float64
	switch value := v.(type) {
	case float64:
		amount = value
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", value)
		}
		amount = parsed
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
	if amount < 0 {
		return 0, fmt.Errorf("negative amount: %v", amount)
	}
	return amount, nil
}

// ParseInt converts a decoded JSON value into an int, accepting numbers and
// numeric strings.
func ParseInt(v any) (int, error) {
	switch value := v.(type) {
	case float64:
		return int(value), nil
	case string:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", value)
		}
		return parsed, nil
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}
