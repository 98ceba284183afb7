package notification

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fashionTrends/pkg/logger"

	"github.com/pobyzaarif/goshortcute"
)

type MailjetConfig struct {
	MailjetBaseURL           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type MailjetRepository struct {
	mailjetConfig MailjetConfig
}

func NewMailjetRepository(cfg MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		mailjetConfig: cfg,
	}
}

type address struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type message struct {
	From     address   `json:"From"`
	To       []address `json:"To"`
	Subject  string    `json:"Subject"`
	TextPart string    `json:"TextPart"`
	HTMLPart string    `json:"HTMLPart"`
}

type sendPayload struct {
	Messages []message `json:"Messages"`
}

func (r *MailjetRepository) SendEmail(toName, toEmail, subject, body string) error {
	payload := sendPayload{
		Messages: []message{{
			From: address{
				Email: r.mailjetConfig.MailjetSenderEmail,
				Name:  r.mailjetConfig.MailjetSenderName,
			},
			To:       []address{{Email: toEmail, Name: toName}},
			Subject:  subject,
			TextPart: body,
			HTMLPart: body,
		}},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, r.mailjetConfig.MailjetBaseURL+"/v3.1/send", strings.NewReader(string(payloadBytes)))
	if err != nil {
		return err
	}

	basicAuth := goshortcute.StringtoBase64Encode(r.mailjetConfig.MailjetBasicAuthUsername + ":" + r.mailjetConfig.MailjetBasicAuthPassword)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Basic "+basicAuth)

	client := &http.Client{Timeout: 5 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(res.Body)
	logger.Warn("Mailjet returned non-success response", "status", res.StatusCode, "body", string(bodyBytes))

	return fmt.Errorf("mailer service returned status %v", res.StatusCode)
}
