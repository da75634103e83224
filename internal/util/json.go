package util

import "encoding/json"

// ConvertStructToJson marshals v for queue payloads and audit records.
// Returns "{}" when marshaling fails so callers always publish valid
// JSON.
func ConvertStructToJson(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
