package sender

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"storefront-service/config"

	gopkgmail "gopkg.in/gomail.v2"
)

type EmailNotification struct {
	To       string
	Subject  string
	Template string         // имя шаблона без расширения, например "owner_alert"
	Data     map[string]any // данные для шаблона
}

type mailer interface {
	DialAndSend(m ...*gopkgmail.Message) error
}

type EmailSender struct {
	from    string
	tmplDir string
	dialer  mailer
}

func NewEmailSender(cfg config.SMTP, tmplDir string) *EmailSender {
	d := gopkgmail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.SSL = cfg.SSL
	return &EmailSender{from: cfg.From, tmplDir: tmplDir, dialer: d}
}

func (s *EmailSender) SendEmail(n EmailNotification) error {
	htmlBody, plainBody, err := s.Render(n.Template, n.Data)
	if err != nil {
		return err
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if strings.Contains(htmlBody, "cid:logo") {
		iconPath := filepath.Join(s.tmplDir, "icon.png")
		if _, errStat := os.Stat(iconPath); errStat == nil {
			m.Embed(iconPath, gopkgmail.SetHeader(map[string][]string{"Content-ID": {"<logo>"}}))
		}
	}

	return s.dialer.DialAndSend(m)
}

// Render возвращает html и plain версии письма
func (s *EmailSender) Render(tmplName string, data map[string]any) (string, string, error) {
	htmlBody, err := s.renderHTML(tmplName, data)
	if err != nil {
		return "", "", fmt.Errorf("render html: %w", err)
	}
	plainBody, err := s.renderPlain(tmplName, data)
	if err != nil {
		return "", "", fmt.Errorf("render plain: %w", err)
	}
	return htmlBody, plainBody, nil
}

func (s *EmailSender) renderHTML(tmplName string, data map[string]any) (string, error) {
	content, err := os.ReadFile(filepath.Join(s.tmplDir, tmplName+".html"))
	if err != nil {
		return "", err
	}
	tmpl, err := htmltemplate.New(tmplName).Funcs(htmltemplate.FuncMap{"lines": lines}).Parse(string(content))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// plain-версия не экранирует html-сущности
func (s *EmailSender) renderPlain(tmplName string, data map[string]any) (string, error) {
	content, err := os.ReadFile(filepath.Join(s.tmplDir, tmplName+".txt"))
	if err != nil {
		return "", err
	}
	tmpl, err := texttemplate.New(tmplName).Parse(string(content))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func lines(v any) []string {
	s, _ := v.(string)
	return strings.Split(s, "\n")
}
