package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"cradle/internal/models"
)

// TestClient provides methods for testing a running API instance
type TestClient struct {
	BaseURL       string
	AdminUser     string
	AdminPassword string
	HTTPClient    *http.Client
}

// NewTestClient creates a new test client
func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		BaseURL:       baseURL,
		AdminUser:     GetAdminUser(),
		AdminPassword: GetAdminPassword(),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response
func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}, admin bool) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.SetBasicAuth(c.AdminUser, c.AdminPassword)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

// HealthCheck verifies the instance is up
func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 from health check, got %d", resp.StatusCode)
	}
}

// ListGifts lists the public catalog
func (c *TestClient) ListGifts(t *testing.T) []models.Gift {
	resp := c.makeRequest(t, "GET", "/api/gifts", nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var gifts []models.Gift
	if err := json.NewDecoder(resp.Body).Decode(&gifts); err != nil {
		t.Fatalf("Failed to decode gifts response: %v", err)
	}

	return gifts
}

// CreateGift creates a registry item through the admin API
func (c *TestClient) CreateGift(t *testing.T, req models.CreateGiftRequest) *models.Gift {
	resp := c.makeRequest(t, "POST", "/api/admin/gifts", req, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var gift models.Gift
	if err := json.NewDecoder(resp.Body).Decode(&gift); err != nil {
		t.Fatalf("Failed to decode gift response: %v", err)
	}

	return &gift
}

// SelectGift reserves a gift and returns the raw response status plus the
// updated gift on success
func (c *TestClient) SelectGift(t *testing.T, giftID, guestName string, quantity int) (int, *models.Gift) {
	req := models.SelectGiftRequest{
		GiftID:    giftID,
		GuestName: guestName,
		Quantity:  quantity,
	}

	resp := c.makeRequest(t, "PATCH", "/api/gifts/select", req, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}

	var gift models.Gift
	if err := json.NewDecoder(resp.Body).Decode(&gift); err != nil {
		t.Fatalf("Failed to decode select response: %v", err)
	}

	return resp.StatusCode, &gift
}

// RevertGift returns a gift to available through the admin API
func (c *TestClient) RevertGift(t *testing.T, giftID string) *models.Gift {
	resp := c.makeRequest(t, "PATCH", fmt.Sprintf("/api/admin/gifts/%s/revert", giftID), nil, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var gift models.Gift
	if err := json.NewDecoder(resp.Body).Decode(&gift); err != nil {
		t.Fatalf("Failed to decode revert response: %v", err)
	}

	return &gift
}

// DeleteGift removes a registry item through the admin API
func (c *TestClient) DeleteGift(t *testing.T, giftID string) {
	resp := c.makeRequest(t, "DELETE", fmt.Sprintf("/api/admin/gifts/%s", giftID), nil, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", resp.StatusCode)
	}
}

// SuggestGift submits a guest suggestion
func (c *TestClient) SuggestGift(t *testing.T, req models.SuggestGiftRequest) *models.Gift {
	resp := c.makeRequest(t, "POST", "/api/suggestions", req, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var gift models.Gift
	if err := json.NewDecoder(resp.Body).Decode(&gift); err != nil {
		t.Fatalf("Failed to decode suggestion response: %v", err)
	}

	return &gift
}

// CreateConfirmation submits an attendance batch
func (c *TestClient) CreateConfirmation(t *testing.T, names []string) *models.CreateConfirmationResponse {
	req := models.CreateConfirmationRequest{Names: names}

	resp := c.makeRequest(t, "POST", "/api/confirmations", req, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var confirmation models.CreateConfirmationResponse
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		t.Fatalf("Failed to decode confirmation response: %v", err)
	}

	return &confirmation
}

// ListAttendees lists the admin attendance view
func (c *TestClient) ListAttendees(t *testing.T) []models.Attendee {
	resp := c.makeRequest(t, "GET", "/api/admin/confirmations", nil, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var attendees []models.Attendee
	if err := json.NewDecoder(resp.Body).Decode(&attendees); err != nil {
		t.Fatalf("Failed to decode attendees response: %v", err)
	}

	return attendees
}

// GetEvent fetches the event settings singleton
func (c *TestClient) GetEvent(t *testing.T) *models.EventSettings {
	resp := c.makeRequest(t, "GET", "/api/event", nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var settings models.EventSettings
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		t.Fatalf("Failed to decode event response: %v", err)
	}

	return &settings
}

// ExportGiftsCSV downloads the gifts export
func (c *TestClient) ExportGiftsCSV(t *testing.T) string {
	resp := c.makeRequest(t, "GET", "/api/admin/export/gifts.csv", nil, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read CSV body: %v", err)
	}

	return string(body)
}
