package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

const baseURL = "http://localhost:8080"

// ids из демо-каталога memory-драйвера
var medicineIDs = []string{"med-1", "med-2", "med-3", "med-4", "med-5", "med-6"}

var paymentMethods = []string{"creditCard", "paypal", "cashOnDelivery"}

func randomString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func doJSON(method, path, customerID string, payload any) (*http.Response, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, baseURL+path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", customerID)

	return http.DefaultClient.Do(req)
}

func generateCheckout() error {
	customerID := "customer_" + randomString(6)

	for range rand.Intn(3) + 1 {
		resp, err := doJSON(http.MethodPost, "/cart/items", customerID, map[string]any{
			"medicine_id": medicineIDs[rand.Intn(len(medicineIDs))],
			"quantity":    rand.Intn(3) + 1,
		})
		if err != nil {
			return err
		}
		resp.Body.Close()
	}

	resp, err := doJSON(http.MethodPost, "/orders", customerID, map[string]any{
		"full_name":      "Customer " + randomString(4),
		"address":        fmt.Sprintf("Street %d", rand.Intn(100)),
		"city":           "Springfield",
		"zip_code":       fmt.Sprintf("%05d", rand.Intn(99999)),
		"phone":          fmt.Sprintf("+1555%07d", rand.Intn(9999999)),
		"payment_method": paymentMethods[rand.Intn(len(paymentMethods))],
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var order struct {
		ID          string  `json:"id"`
		TotalAmount float64 `json:"total_amount"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return err
	}

	log.Println("order created", order.ID, order.TotalAmount, resp.Status)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	for {
		select {
		case <-ticker.C:
			if err := generateCheckout(); err != nil {
				log.Println("checkout failed:", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
