package mailer

import "gopkg.in/gomail.v2"

// SMTPMailer sends courtesy notifications to hosts over SMTP.
type SMTPMailer struct {
	Host     string
	Port     int
	From     string
	Password string
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, From: from, Password: password}
}

func (m *SMTPMailer) SendListingCreatedEmail(toEmail, listingTitle string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "New Listing Created")
	msg.SetBody("text/plain", "Your listing '"+listingTitle+"' has been created successfully.")

	d := gomail.NewDialer(m.Host, m.Port, m.From, m.Password)
	return d.DialAndSend(msg)
}
