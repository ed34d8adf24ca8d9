package models

// ErrorResponse is the single error envelope used by every HTTP route.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Mail is a transactional message handed to the mail adapter.
type Mail struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
