package service

import (
	"errors"
	"fmt"
	"stockpix/gallery-api/model"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SendVerificationMail mails the account verification link. With mail
// disabled the link is logged instead so local setups stay usable.
func SendVerificationMail(t *model.VerificationToken, sendTo string) error {
	verifLink := fmt.Sprintf("%v/verify?user_id=%v&token=%v",
		viper.GetString("host.frontend_url"), t.UserID, t.Token)

	if !viper.GetBool("mail.enabled") {
		zap.L().Info("Mail disabled, verification link not sent", zap.String("link", verifLink))
		return nil
	}

	from := viper.GetString("mail.sender")
	if sendTo == from {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", "Verify your email to start using StockPix")
	m.SetBody("text/html", fmt.Sprintf("Click <a href='%v'>here</a> to verify your account.\n\nThis link will expire in 30 minutes", verifLink))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}

// SendContactMail forwards a stored contact message to the site inbox.
// Best effort, callers log failures and keep the 200.
func SendContactMail(msg *model.ContactMessage) error {
	if !viper.GetBool("mail.enabled") {
		return nil
	}

	from := viper.GetString("mail.sender")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", from)
	m.SetHeader("Reply-To", msg.Email)
	m.SetHeader("Subject", "[contact] "+msg.Subject)
	m.SetBody("text/plain", fmt.Sprintf("From: %v <%v>\n\n%v", msg.Name, msg.Email, msg.Message))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}
