package gateway

import (
	"encoding/json"
	"fmt"
)

// apiError mirrors the collaborator's error envelope.
type apiError struct {
	Detail string `json:"detail"`
}

// decodeError surfaces the collaborator's detail message verbatim so the
// operator sees what the server actually complained about.
func decodeError(status int, body []byte) error {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return fmt.Errorf("collaborator error (status %d): %s", status, e.Detail)
	}
	return fmt.Errorf("collaborator error (status %d): %s", status, string(body))
}
