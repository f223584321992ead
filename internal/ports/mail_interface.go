package ports

// MailSender : исходящая почта, fire-and-forget
type MailSender interface {
	SendTextEmail(to []string, subject, text string) error
	SendHTMLEmail(to []string, subject, html string) error
	SendNotificationEmail(to []string, title, message string, details map[string]string) error
}
