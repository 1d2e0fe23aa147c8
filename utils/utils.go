package utils

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"connectx/config"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// SendOTPEmail delivers an OTP through SendGrid. Without an API key the OTP
// is logged so local development keeps working.
func SendOTPEmail(toEmail, name, otp string) error {
	cfg := config.AppConfig
	if cfg.SendGridApiKey == "" {
		log.Printf("OTP for %s: %s", toEmail, otp)
		return nil
	}

	from := sgmail.NewEmail("ConnectX", cfg.EmailSender)
	to := sgmail.NewEmail(name, toEmail)
	subject := "Your ConnectX verification code"
	plain := fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in 10 minutes.", name, otp)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in 10 minutes.</p>", name, otp)
	message := sgmail.NewSingleEmail(from, subject, to, plain, html)

	client := sendgrid.NewSendClient(cfg.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sending OTP email: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending OTP email: status %d", resp.StatusCode)
	}
	return nil
}
