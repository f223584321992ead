package service

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"gopkg.in/gomail.v2"

	"report-web-server/config"
	"report-web-server/internal/util"
)

// MailService : исходящая почта через SMTP. Соединение с релеем дорогое,
// поэтому создаётся лениво и переиспользуется между запросами; гонка при
// создании безвредна — соединение не несёт бизнес-состояния и может быть
// пересоздано в любой момент
type MailService struct {
	cfg    *config.SMTPConfig
	dialer *gomail.Dialer

	mu     sync.Mutex
	sender gomail.SendCloser
}

func NewMailService(cfg *config.SMTPConfig) *MailService {
	return &MailService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (s *MailService) send(m *gomail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sender == nil {
		sender, err := s.dialer.Dial()
		if err != nil {
			return util.LogError("[MailService] ошибка подключения к SMTP", err)
		}
		s.sender = sender
	}

	if err := gomail.Send(s.sender, m); err != nil {
		// соединение могло протухнуть — пересоздаём и пробуем один раз
		s.sender.Close()
		s.sender = nil

		sender, dialErr := s.dialer.Dial()
		if dialErr != nil {
			return util.LogError("[MailService] ошибка переподключения к SMTP", dialErr)
		}
		s.sender = sender

		if err := gomail.Send(s.sender, m); err != nil {
			return util.LogError("[MailService] ошибка отправки письма", err)
		}
	}

	return nil
}

func (s *MailService) newMessage(to []string, subject string) *gomail.Message {
	m := gomail.NewMessage()
	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	return m
}

// SendTextEmail : простое текстовое письмо
func (s *MailService) SendTextEmail(to []string, subject, text string) error {
	m := s.newMessage(to, subject)
	m.SetBody("text/plain", text)
	return s.send(m)
}

// SendHTMLEmail : письмо с HTML-телом
func (s *MailService) SendHTMLEmail(to []string, subject, html string) error {
	m := s.newMessage(to, subject)
	m.SetBody("text/html", html)
	return s.send(m)
}

// SendNotificationEmail : шаблон уведомления с таблицей деталей
func (s *MailService) SendNotificationEmail(to []string, title, message string, details map[string]string) error {
	var rows strings.Builder
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows.WriteString(fmt.Sprintf("<tr><td><b>%s</b></td><td>%s</td></tr>", k, details[k]))
	}

	html := fmt.Sprintf(`
		<h2>%s</h2>
		<p>%s</p>
		<table border="0" cellpadding="4">%s</table>
	`, title, message, rows.String())

	if err := s.SendHTMLEmail(to, title, html); err != nil {
		return err
	}

	log.Printf("[MailService] уведомление «%s» отправлено %s", title, strings.Join(to, ", "))
	return nil
}
