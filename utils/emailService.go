package utils

import (
	"fmt"
	"lms/config"
	"log"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through the configured SMTP account.
// Returns without sending when no sender is configured.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" {
		log.Println("Email sender not configured, skipping email.")
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// SendCertificateEmail notifies a learner that their certificate was issued
func SendCertificateEmail(to, learnerName, courseTitle, certificateID string) error {
	body := fmt.Sprintf(`
	<html>
	<body style="font-family: Arial, sans-serif; color: #333;">
		<h2>Congratulations, %s!</h2>
		<p>You have completed the course <strong>%s</strong>.</p>
		<p>Your certificate number is <strong>%s</strong>. You can view it any
		time from your dashboard.</p>
	</body>
	</html>`, learnerName, courseTitle, certificateID)

	return SendEmail([]string{to}, "Your course certificate is ready", body)
}
