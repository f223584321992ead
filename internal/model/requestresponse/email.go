package requestresponse

type SendEmailRequest struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
}

type SendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
