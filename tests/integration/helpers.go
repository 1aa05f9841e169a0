package integration

import (
	"os"
	"testing"

	"cradle/internal/models"
)

const defaultBaseURL = "http://localhost:8080"

// RequireInstance skips the test unless CRADLE_INTEGRATION points at a
// running instance (any non-empty value; a URL overrides the default)
func RequireInstance(t *testing.T) string {
	target := os.Getenv("CRADLE_INTEGRATION")
	if target == "" {
		t.Skip("set CRADLE_INTEGRATION to run integration tests against a live instance")
	}
	if target == "1" || target == "true" {
		return defaultBaseURL
	}
	return target
}

// GetAdminUser returns the basic-auth user for admin endpoints
func GetAdminUser() string {
	if user := os.Getenv("CRADLE_ADMIN_USER"); user != "" {
		return user
	}
	return "admin"
}

// GetAdminPassword returns the basic-auth password for admin endpoints
func GetAdminPassword() string {
	if password := os.Getenv("CRADLE_ADMIN_PASSWORD"); password != "" {
		return password
	}
	return "admin"
}

// FindAvailableGift finds a gift open for reservation
func FindAvailableGift(gifts []models.Gift) *models.Gift {
	for i := range gifts {
		if gifts[i].Status == models.GiftStatusAvailable {
			return &gifts[i]
		}
	}
	return nil
}

// AssertGiftStatus verifies that a gift in the list has the expected status
func AssertGiftStatus(t *testing.T, gifts []models.Gift, giftID, expectedStatus string) {
	for _, gift := range gifts {
		if gift.ID == giftID {
			if gift.Status != expectedStatus {
				t.Fatalf("Gift %s has status '%s', expected '%s'", giftID, gift.Status, expectedStatus)
			}
			return
		}
	}
	t.Fatalf("Gift with ID %s not found in gifts list", giftID)
}

// LogTestStep logs a test step for better debugging
func LogTestStep(t *testing.T, step string, args ...interface{}) {
	t.Logf("🔹 "+step, args...)
}

// LogTestResult logs a test result
func LogTestResult(t *testing.T, result string, args ...interface{}) {
	t.Logf("✅ "+result, args...)
}
