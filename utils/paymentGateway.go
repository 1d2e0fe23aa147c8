package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"connectx/config"
)

// GatewayOrder is the payment gateway's order object, created before the
// client-side checkout runs.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// GatewaySubscription is the gateway's recurring billing object.
type GatewaySubscription struct {
	ID     string `json:"id"`
	PlanID string `json:"plan_id"`
	Status string `json:"status"`
}

// CreateOrder registers a one-time payment order with the gateway. Amount is
// in the smallest currency unit (paise).
func CreateOrder(amount int64) (*GatewayOrder, error) {
	cfg := config.AppConfig
	receipt := "rcpt_" + uuid.NewString()[:13]

	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(cfg.GatewayApiKey, cfg.GatewaySecretKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amount,
			"currency": "INR",
			"receipt":  receipt,
		}).
		Post(cfg.GatewayApiURL + "orders")
	if err != nil {
		return nil, fmt.Errorf("creating gateway order: %w", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Gateway order error: %s", resp.String())
		return nil, fmt.Errorf("creating gateway order: status %d", resp.StatusCode())
	}

	var order GatewayOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("parsing gateway order: %w", err)
	}
	return &order, nil
}

// CreateSubscription starts a recurring billing cycle on the gateway plan.
func CreateSubscription(planID string, totalCount int) (*GatewaySubscription, error) {
	cfg := config.AppConfig

	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(cfg.GatewayApiKey, cfg.GatewaySecretKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"plan_id":         planID,
			"total_count":     totalCount,
			"customer_notify": 1,
		}).
		Post(cfg.GatewayApiURL + "subscriptions")
	if err != nil {
		return nil, fmt.Errorf("creating gateway subscription: %w", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Gateway subscription error: %s", resp.String())
		return nil, fmt.Errorf("creating gateway subscription: status %d", resp.StatusCode())
	}

	var sub GatewaySubscription
	if err := json.Unmarshal(resp.Body(), &sub); err != nil {
		return nil, fmt.Errorf("parsing gateway subscription: %w", err)
	}
	return &sub, nil
}

// VerifyPaymentSignature checks the gateway's HMAC-SHA256 signature over
// "orderId|paymentId".
func VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(config.AppConfig.GatewaySecretKey))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
