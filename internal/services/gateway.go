package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mentorlink/mentorlink-backend/internal/models"
)

// VaultedCard is the gateway's answer to a successful nonce exchange.
type VaultedCard struct {
	Token string `json:"token"`
	Last4 string `json:"last4"`
	Brand string `json:"brand"`
}

// PaymentGateway vaults cards and captures charges with the external
// payment provider. A declined pre-authorization surfaces as the fixed
// domain error ErrInvalidPaymentPreauth.
type PaymentGateway interface {
	VaultCard(nonce string) (*VaultedCard, error)
	Charge(token string, amount float64, reference string) (string, error)
}

// HTTPPaymentGateway talks to the provider's REST API.
type HTTPPaymentGateway struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPPaymentGateway builds the production gateway client.
func NewHTTPPaymentGateway(baseURL, apiKey string) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type vaultResponse struct {
	Token    string `json:"token"`
	Last4    string `json:"last4"`
	Brand    string `json:"brand"`
	Declined bool   `json:"declined"`
}

func (g *HTTPPaymentGateway) VaultCard(nonce string) (*VaultedCard, error) {
	var out vaultResponse
	err := g.post("/cards", map[string]string{"nonce": nonce}, &out)
	if err != nil {
		return nil, err
	}
	if out.Declined {
		return nil, models.ErrInvalidPaymentPreauth
	}
	return &VaultedCard{Token: out.Token, Last4: out.Last4, Brand: out.Brand}, nil
}

type chargeResponse struct {
	ID       string `json:"id"`
	Declined bool   `json:"declined"`
}

func (g *HTTPPaymentGateway) Charge(token string, amount float64, reference string) (string, error) {
	var out chargeResponse
	err := g.post("/charges", map[string]interface{}{
		"token":     token,
		"amount":    amount,
		"reference": reference,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Declined {
		return "", models.ErrInvalidPaymentPreauth
	}
	return out.ID, nil
}

func (g *HTTPPaymentGateway) post(path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity {
		return models.ErrInvalidPaymentPreauth
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("payment gateway returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
