package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"cradle/internal/models"
)

// SmokeValidator checks a running instance against the public API contract
type SmokeValidator struct {
	baseURL string
}

func NewSmokeValidator(baseURL string) *SmokeValidator {
	return &SmokeValidator{baseURL: baseURL}
}

// ValidateAll exercises every public endpoint
func (v *SmokeValidator) ValidateAll() error {
	log.Println("Validating public API endpoints...")

	if err := v.validateGifts(); err != nil {
		return fmt.Errorf("gifts validation failed: %w", err)
	}

	if err := v.validateEvent(); err != nil {
		return fmt.Errorf("event validation failed: %w", err)
	}

	if err := v.validateConfirmations(); err != nil {
		return fmt.Errorf("confirmations validation failed: %w", err)
	}

	log.Println("All endpoints passed validation")
	return nil
}

func (v *SmokeValidator) validateGifts() error {
	resp, err := v.makeRequest("GET", "/api/gifts", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/gifts: expected 200, got %d", resp.StatusCode)
	}

	var gifts models.ListGiftsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gifts); err != nil {
		return fmt.Errorf("GET /api/gifts: failed to decode response: %w", err)
	}

	// Selecting a made-up gift must be a clean 404, not a 500
	selectReq := models.SelectGiftRequest{
		GiftID:    "00000000-0000-0000-0000-000000000000",
		GuestName: "Smoke Test",
	}
	resp, err = v.makeRequest("PATCH", "/api/gifts/select", selectReq)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("PATCH /api/gifts/select: expected 404 for unknown gift, got %d", resp.StatusCode)
	}

	return nil
}

func (v *SmokeValidator) validateEvent() error {
	resp, err := v.makeRequest("GET", "/api/event", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/event: expected 200, got %d", resp.StatusCode)
	}

	var settings models.EventSettings
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		return fmt.Errorf("GET /api/event: failed to decode response: %w", err)
	}
	if settings.Title == "" {
		return fmt.Errorf("GET /api/event: expected non-empty title")
	}

	resp, err = v.makeRequest("GET", "/api/event/calendar-link", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/event/calendar-link: expected 200, got %d", resp.StatusCode)
	}

	return nil
}

func (v *SmokeValidator) validateConfirmations() error {
	// An empty batch must be rejected
	resp, err := v.makeRequest("POST", "/api/confirmations", models.CreateConfirmationRequest{Names: []string{" "}})
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("POST /api/confirmations: expected 400 for blank names, got %d", resp.StatusCode)
	}

	return nil
}

func (v *SmokeValidator) makeRequest(method, path string, body interface{}) (*http.Response, error) {
	var req *http.Request
	var err error

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		req, err = http.NewRequest(method, v.baseURL+path, bytes.NewBuffer(jsonBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(method, v.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	return resp, nil
}

// RunValidation smoke-tests the instance named by CRADLE_URL
func RunValidation() {
	baseURL := os.Getenv("CRADLE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	validator := NewSmokeValidator(baseURL)
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}
}
