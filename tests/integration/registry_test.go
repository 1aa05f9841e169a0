package integration

import (
	"net/http"
	"strings"
	"testing"

	"cradle/internal/models"
)

// TestRegistry_HealthCheck tests the API health endpoint
func TestRegistry_HealthCheck(t *testing.T) {
	client := NewTestClient(RequireInstance(t))

	LogTestStep(t, "Testing API health check")
	client.HealthCheck(t)
	LogTestResult(t, "API is healthy and responding")
}

// TestRegistry_GiftLifecycle walks one gift through create, select, revert
// and delete
func TestRegistry_GiftLifecycle(t *testing.T) {
	client := NewTestClient(RequireInstance(t))

	LogTestStep(t, "Creating a gift through the admin API")
	gift := client.CreateGift(t, models.CreateGiftRequest{
		Name:     "Integration test gift",
		Category: "Testing",
	})
	LogTestResult(t, "Created gift %s", gift.ID)

	LogTestStep(t, "Reserving the gift as a guest")
	status, selected := client.SelectGift(t, gift.ID, "Integration Guest", 0)
	if status != http.StatusOK {
		t.Fatalf("Expected status 200 selecting gift, got %d", status)
	}
	if selected.Status != models.GiftStatusSelected {
		t.Fatalf("Expected gift status 'selected', got '%s'", selected.Status)
	}
	LogTestResult(t, "Gift reserved by %s", *selected.SelectedBy)

	LogTestStep(t, "Reserving again must conflict")
	status, _ = client.SelectGift(t, gift.ID, "Second Guest", 0)
	if status != http.StatusConflict {
		t.Fatalf("Expected status 409 on double reservation, got %d", status)
	}
	LogTestResult(t, "Double reservation rejected")

	LogTestStep(t, "Reverting the gift through the admin API")
	reverted := client.RevertGift(t, gift.ID)
	if reverted.Status != models.GiftStatusAvailable {
		t.Fatalf("Expected gift status 'available' after revert, got '%s'", reverted.Status)
	}
	if reverted.SelectedBy != nil {
		t.Fatalf("Expected selectedBy cleared after revert, got '%s'", *reverted.SelectedBy)
	}
	LogTestResult(t, "Gift reverted to available")

	LogTestStep(t, "Catalog reflects the revert")
	AssertGiftStatus(t, client.ListGifts(t), gift.ID, models.GiftStatusAvailable)

	LogTestStep(t, "Deleting the gift")
	client.DeleteGift(t, gift.ID)
	LogTestResult(t, "Gift deleted")
}

// TestRegistry_QuantityGift verifies partial reservation accounting
func TestRegistry_QuantityGift(t *testing.T) {
	client := NewTestClient(RequireInstance(t))

	quantity := 3
	gift := client.CreateGift(t, models.CreateGiftRequest{
		Name:          "Integration test diapers",
		Category:      "Testing",
		TotalQuantity: &quantity,
	})
	defer client.DeleteGift(t, gift.ID)

	LogTestStep(t, "Reserving 2 of %d units", quantity)
	status, selected := client.SelectGift(t, gift.ID, "Guest A", 2)
	if status != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if selected.SelectedQuantity != 2 {
		t.Fatalf("Expected selectedQuantity 2, got %d", selected.SelectedQuantity)
	}

	LogTestStep(t, "Over-requesting the remaining unit must conflict")
	status, _ = client.SelectGift(t, gift.ID, "Guest B", 2)
	if status != http.StatusConflict {
		t.Fatalf("Expected status 409 on over-request, got %d", status)
	}

	LogTestStep(t, "Reserving the last unit")
	status, selected = client.SelectGift(t, gift.ID, "Guest B", 1)
	if status != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if selected.SelectedQuantity != quantity {
		t.Fatalf("Expected selectedQuantity %d, got %d", quantity, selected.SelectedQuantity)
	}
	LogTestResult(t, "Quantity accounting held at %d/%d", selected.SelectedQuantity, quantity)
}

// TestRegistry_Suggestion verifies the guest suggestion flow
func TestRegistry_Suggestion(t *testing.T) {
	client := NewTestClient(RequireInstance(t))

	LogTestStep(t, "Submitting a guest suggestion")
	gift := client.SuggestGift(t, models.SuggestGiftRequest{
		Name:          "Integration test suggestion",
		SuggesterName: "Integration Guest",
	})
	defer client.DeleteGift(t, gift.ID)

	if gift.Status != models.GiftStatusSelected {
		t.Fatalf("Expected suggestion status 'selected', got '%s'", gift.Status)
	}
	if gift.SelectedBy == nil || *gift.SelectedBy != "Integration Guest" {
		t.Fatalf("Expected suggestion reserved by its suggester")
	}
	if gift.Category != models.DefaultSuggestionCategory {
		t.Fatalf("Expected category '%s', got '%s'", models.DefaultSuggestionCategory, gift.Category)
	}
	LogTestResult(t, "Suggestion auto-reserved by %s", *gift.SelectedBy)
}

// TestRegistry_Confirmations verifies attendance confirmation and the admin
// view
func TestRegistry_Confirmations(t *testing.T) {
	client := NewTestClient(RequireInstance(t))

	LogTestStep(t, "Submitting an attendance batch")
	confirmation := client.CreateConfirmation(t, []string{"Integration Guest A", "Integration Guest B"})
	if len(confirmation.Names) != 2 {
		t.Fatalf("Expected 2 names in confirmation, got %d", len(confirmation.Names))
	}

	LogTestStep(t, "Checking the admin attendance view")
	attendees := client.ListAttendees(t)
	found := 0
	for _, attendee := range attendees {
		if attendee.Name == "Integration Guest A" || attendee.Name == "Integration Guest B" {
			found++
		}
	}
	if found < 2 {
		t.Fatalf("Expected both submitted names in the attendance view, found %d", found)
	}
	LogTestResult(t, "Found %d attendees", len(attendees))
}

// TestRegistry_EventSettings verifies the singleton is always readable
func TestRegistry_EventSettings(t *testing.T) {
	client := NewTestClient(RequireInstance(t))

	settings := client.GetEvent(t)
	if settings.Title == "" {
		t.Fatal("Expected non-empty event title")
	}
	LogTestResult(t, "Event settings present: %s", settings.Title)
}

// TestRegistry_GiftsExport verifies the CSV download shape
func TestRegistry_GiftsExport(t *testing.T) {
	client := NewTestClient(RequireInstance(t))

	csv := client.ExportGiftsCSV(t)
	// BOM then header
	body := strings.TrimPrefix(csv, "\ufeff")
	if !strings.HasPrefix(body, "ID,Name,Description") {
		t.Fatalf("Unexpected CSV header: %q", strings.SplitN(body, "\n", 2)[0])
	}
	LogTestResult(t, "Gifts export downloaded, %d bytes", len(csv))
}
