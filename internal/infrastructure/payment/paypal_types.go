package payment

import "encoding/json"

// paypalTokenResponse is the body of POST /v1/oauth2/token
type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// paypalCaptureStatus carries the only field the service inspects from
// a capture response; the raw body is passed through unmodified.
type paypalCaptureStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// paypalErrorResponse covers both error shapes the API uses: OAuth
// errors ({"error", "error_description"}) and order errors
// ({"name", "message"}).
type paypalErrorResponse struct {
	Name             string `json:"name"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *paypalErrorResponse) describe() string {
	if e.Name != "" {
		return e.Name + ": " + e.Message
	}
	if e.Error != "" {
		return e.Error + ": " + e.ErrorDescription
	}
	return ""
}

func isJSONObject(body []byte) bool {
	return json.Valid(body) && len(body) > 0 && body[0] == '{'
}
