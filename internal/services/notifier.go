package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier delivers a message over one channel. The dispatcher decides
// which channels need sending; implementations only talk to gateways.
type Notifier interface {
	SendPush(token, title, body string, data map[string]string) error
	SendEmail(to, subject, body string) error
}

// GatewayNotifier implements Notifier against HTTP push and email
// gateways (FCM-style push endpoint, JSON email API).
type GatewayNotifier struct {
	client    *http.Client
	pushURL   string
	pushKey   string
	emailURL  string
	emailKey  string
	fromEmail string
}

// NewGatewayNotifier builds the production notifier.
func NewGatewayNotifier(pushURL, pushKey, emailURL, emailKey, fromEmail string) *GatewayNotifier {
	return &GatewayNotifier{
		client:    &http.Client{Timeout: 10 * time.Second},
		pushURL:   pushURL,
		pushKey:   pushKey,
		emailURL:  emailURL,
		emailKey:  emailKey,
		fromEmail: fromEmail,
	}
}

type pushRequest struct {
	To           string            `json:"to"`
	Notification map[string]string `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

func (n *GatewayNotifier) SendPush(token, title, body string, data map[string]string) error {
	payload := pushRequest{
		To:           token,
		Notification: map[string]string{"title": title, "body": body},
		Data:         data,
	}
	return n.post(n.pushURL, "key="+n.pushKey, payload)
}

type emailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (n *GatewayNotifier) SendEmail(to, subject, body string) error {
	payload := emailRequest{From: n.fromEmail, To: to, Subject: subject, Body: body}
	return n.post(n.emailURL, "Bearer "+n.emailKey, payload)
}

func (n *GatewayNotifier) post(url, authorization string, payload interface{}) error {
	if url == "" {
		return fmt.Errorf("notifier endpoint not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authorization)

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notifier gateway returned %d", resp.StatusCode)
	}
	return nil
}
