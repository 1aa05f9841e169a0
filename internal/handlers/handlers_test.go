package handlers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "cradle/internal/errors"
	"cradle/internal/middleware"
	"cradle/internal/models"
	"cradle/internal/repository"
	"cradle/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "secret"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// In-memory stores backing the handler tests.

type memGiftStore struct {
	mu    sync.Mutex
	gifts map[string]*models.Gift
	now   time.Time
}

func newMemGiftStore() *memGiftStore {
	return &memGiftStore{gifts: make(map[string]*models.Gift), now: time.Now()}
}

func (m *memGiftStore) List(ctx context.Context) ([]models.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var gifts []models.Gift
	for _, gift := range m.gifts {
		gifts = append(gifts, *gift)
	}
	sort.Slice(gifts, func(i, j int) bool {
		return gifts[i].CreatedAt.After(gifts[j].CreatedAt)
	})
	return gifts, nil
}

func (m *memGiftStore) GetByID(ctx context.Context, id string) (*models.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gift, ok := m.gifts[id]
	if !ok {
		return nil, nil
	}
	c := *gift
	return &c, nil
}

func (m *memGiftStore) Create(ctx context.Context, gift *models.Gift) (*models.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *gift
	c.ID = uuid.New().String()
	m.now = m.now.Add(time.Second)
	c.CreatedAt = m.now
	m.gifts[c.ID] = &c
	out := c
	return &out, nil
}

func (m *memGiftStore) Update(ctx context.Context, gift *models.Gift) (*models.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.gifts[gift.ID]
	if !ok {
		return nil, apperrors.ErrGiftNotFound
	}
	c := *gift
	c.CreatedAt = existing.CreatedAt
	m.gifts[gift.ID] = &c
	out := c
	return &out, nil
}

func (m *memGiftStore) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.gifts[id]; !ok {
		return false, nil
	}
	delete(m.gifts, id)
	return true, nil
}

func (m *memGiftStore) Reserve(ctx context.Context, id, guestName string, quantity int) (*models.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gift, ok := m.gifts[id]
	if !ok {
		return nil, apperrors.ErrGiftNotFound
	}
	if gift.Status == models.GiftStatusNotNeeded {
		return nil, apperrors.ErrGiftUnavailable
	}

	now := time.Now()
	if gift.IsQuantity() {
		if gift.Remaining() == 0 {
			return nil, apperrors.ErrGiftUnavailable
		}
		if quantity > gift.Remaining() {
			return nil, apperrors.ErrQuantityExceeded
		}
		gift.SelectedQuantity += quantity
	} else {
		if gift.Status != models.GiftStatusAvailable {
			return nil, apperrors.ErrGiftUnavailable
		}
		gift.Status = models.GiftStatusSelected
	}
	gift.SelectedBy = &guestName
	gift.SelectionDate = &now

	c := *gift
	return &c, nil
}

func (m *memGiftStore) Revert(ctx context.Context, id string) (*models.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gift, ok := m.gifts[id]
	if !ok {
		return nil, apperrors.ErrGiftNotFound
	}
	gift.Status = models.GiftStatusAvailable
	gift.SelectedBy = nil
	gift.SelectionDate = nil
	gift.SelectedQuantity = 0

	c := *gift
	return &c, nil
}

type memSettingsStore struct {
	mu       sync.Mutex
	settings *models.EventSettings
}

func (m *memSettingsStore) Get(ctx context.Context) (*models.EventSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.settings == nil {
		return nil, nil
	}
	c := *m.settings
	return &c, nil
}

func (m *memSettingsStore) Init(ctx context.Context, defaults *models.EventSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.settings == nil {
		c := *defaults
		m.settings = &c
	}
	return nil
}

func (m *memSettingsStore) Update(ctx context.Context, settings *models.EventSettings) (*models.EventSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *settings
	m.settings = &c
	return settings, nil
}

type memConfirmationStore struct {
	mu            sync.Mutex
	confirmations []models.Confirmation
}

func (m *memConfirmationStore) Create(ctx context.Context, names []string) (*models.Confirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	confirmation := models.Confirmation{
		ID:          int64(len(m.confirmations) + 1),
		Names:       append([]string(nil), names...),
		ConfirmedAt: time.Now(),
	}
	m.confirmations = append(m.confirmations, confirmation)
	return &confirmation, nil
}

func (m *memConfirmationStore) ListAttendees(ctx context.Context) ([]models.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var attendees []models.Attendee
	for _, confirmation := range m.confirmations {
		for _, name := range confirmation.Names {
			attendees = append(attendees, models.Attendee{Name: name, ConfirmedAt: confirmation.ConfirmedAt})
		}
	}
	return attendees, nil
}

// setupTestRouter wires the full route table over in-memory stores, matching
// the production server layout.
func setupTestRouter(t *testing.T) (*gin.Engine, *memGiftStore) {
	t.Helper()

	giftStore := newMemGiftStore()
	repos := &repository.Repositories{
		Gifts:         giftStore,
		Settings:      &memSettingsStore{},
		Confirmations: &memConfirmationStore{},
	}
	services := service.NewServices(repos, nil, nil, nil)
	h := NewHandlers(services, nil, nil)

	hash := sha256.Sum256([]byte(testAdminPassword))
	adminHash := fmt.Sprintf("%x", hash)

	router := gin.New()
	api := router.Group("/api")
	{
		api.GET("/gifts", h.ListGifts)
		api.PATCH("/gifts/select", h.SelectGift)
		api.POST("/suggestions", h.SuggestGift)
		api.POST("/confirmations", h.CreateConfirmation)
		api.GET("/event", h.GetEvent)
		api.GET("/event/calendar-link", h.CalendarLink)

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(testAdminUser, adminHash))
		{
			admin.POST("/gifts", h.CreateGift)
			admin.PATCH("/gifts/:id", h.UpdateGift)
			admin.DELETE("/gifts/:id", h.DeleteGift)
			admin.PATCH("/gifts/:id/revert", h.RevertGift)
			admin.PATCH("/event", h.UpdateEvent)
			admin.GET("/confirmations", h.ListConfirmations)
			admin.GET("/export/gifts.csv", h.ExportGiftsCSV)
			admin.GET("/export/confirmations.csv", h.ExportConfirmationsCSV)
			admin.POST("/images", h.UploadImage)
		}
	}

	return router, giftStore
}

func doJSON(router *gin.Engine, method, path string, body interface{}, admin bool) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.SetBasicAuth(testAdminUser, testAdminPassword)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createTestGift(t *testing.T, router *gin.Engine, body models.CreateGiftRequest) models.Gift {
	t.Helper()

	w := doJSON(router, http.MethodPost, "/api/admin/gifts", body, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var gift models.Gift
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gift))
	return gift
}

func TestListGiftsEmpty(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/gifts", nil, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestSelectGiftEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	gift := createTestGift(t, router, models.CreateGiftRequest{Name: "Stroller"})

	w := doJSON(router, http.MethodPatch, "/api/gifts/select", models.SelectGiftRequest{
		GiftID:    gift.ID,
		GuestName: "Ana",
	}, false)

	require.Equal(t, http.StatusOK, w.Code)

	var selected models.Gift
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &selected))
	assert.Equal(t, models.GiftStatusSelected, selected.Status)
}

func TestSelectGiftUnknownReturns404(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPatch, "/api/gifts/select", models.SelectGiftRequest{
		GiftID:    uuid.New().String(),
		GuestName: "Ana",
	}, false)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectGiftConflictReturns409(t *testing.T) {
	router, _ := setupTestRouter(t)
	gift := createTestGift(t, router, models.CreateGiftRequest{Name: "Crib"})

	w := doJSON(router, http.MethodPatch, "/api/gifts/select", models.SelectGiftRequest{
		GiftID: gift.ID, GuestName: "Ana",
	}, false)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPatch, "/api/gifts/select", models.SelectGiftRequest{
		GiftID: gift.ID, GuestName: "Bea",
	}, false)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSelectGiftMissingGuestNameReturns400(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPatch, "/api/gifts/select", gin.H{"giftId": uuid.New().String()}, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestGiftEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/suggestions", models.SuggestGiftRequest{
		Name:          "Toy",
		SuggesterName: "Ana",
	}, false)

	require.Equal(t, http.StatusCreated, w.Code)

	var gift models.Gift
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gift))
	assert.Equal(t, models.GiftStatusSelected, gift.Status)
	require.NotNil(t, gift.SelectedBy)
	assert.Equal(t, "Ana", *gift.SelectedBy)
	assert.Equal(t, models.DefaultSuggestionCategory, gift.Category)
}

func TestCreateConfirmationEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/confirmations", models.CreateConfirmationRequest{
		Names: []string{"Ana", "Bea"},
	}, false)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.CreateConfirmationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Ana", "Bea"}, resp.Names)
}

func TestCreateConfirmationBlankNamesReturns400(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/confirmations", models.CreateConfirmationRequest{
		Names: []string{"  ", ""},
	}, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateConfirmationMissingNamesReturns400(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/confirmations", gin.H{}, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEventSeedsDefaults(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/event", nil, false)

	require.Equal(t, http.StatusOK, w.Code)

	var settings models.EventSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "Baby Shower", settings.Title)
}

func TestCalendarLinkEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/event/calendar-link", nil, false)

	require.Equal(t, http.StatusOK, w.Code)

	var link models.CalendarLinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
	assert.Contains(t, link.URL, "https://www.google.com/calendar/render?")
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/admin/gifts", models.CreateGiftRequest{Name: "Crib"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/confirmations", nil)
	req.SetBasicAuth(testAdminUser, "wrong-password")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateGiftEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	gift := createTestGift(t, router, models.CreateGiftRequest{Name: "Crib"})

	newName := "Convertible crib"
	w := doJSON(router, http.MethodPatch, "/api/admin/gifts/"+gift.ID, models.UpdateGiftRequest{
		Name: &newName,
	}, true)

	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Gift
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Convertible crib", updated.Name)
}

func TestUpdateGiftUnknownReturns404(t *testing.T) {
	router, _ := setupTestRouter(t)

	name := "Ghost"
	w := doJSON(router, http.MethodPatch, "/api/admin/gifts/"+uuid.New().String(), models.UpdateGiftRequest{
		Name: &name,
	}, true)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteGiftEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	gift := createTestGift(t, router, models.CreateGiftRequest{Name: "Thermometer"})

	w := doJSON(router, http.MethodDelete, "/api/admin/gifts/"+gift.ID, nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/admin/gifts/"+gift.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRevertGiftEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	gift := createTestGift(t, router, models.CreateGiftRequest{Name: "Blanket"})

	w := doJSON(router, http.MethodPatch, "/api/gifts/select", models.SelectGiftRequest{
		GiftID: gift.ID, GuestName: "Ana",
	}, false)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPatch, "/api/admin/gifts/"+gift.ID+"/revert", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var reverted models.Gift
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reverted))
	assert.Equal(t, models.GiftStatusAvailable, reverted.Status)
	assert.Nil(t, reverted.SelectedBy)
}

func TestUpdateEventEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	title := "June's Shower"
	w := doJSON(router, http.MethodPatch, "/api/admin/event", models.UpdateEventSettingsRequest{
		Title: &title,
	}, true)

	require.Equal(t, http.StatusOK, w.Code)

	var settings models.EventSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "June's Shower", settings.Title)
}

func TestListConfirmationsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/confirmations", models.CreateConfirmationRequest{
		Names: []string{"Ana"},
	}, false)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/admin/confirmations", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var attendees []models.Attendee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &attendees))
	require.Len(t, attendees, 1)
	assert.Equal(t, "Ana", attendees[0].Name)
}

func TestExportGiftsCSVEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	createTestGift(t, router, models.CreateGiftRequest{Name: "Stroller"})

	w := doJSON(router, http.MethodGet, "/api/admin/export/gifts.csv", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=gifts_")

	body := w.Body.Bytes()
	// UTF-8 BOM before the header row
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	assert.True(t, strings.HasPrefix(string(body[3:]), "ID,Name,Description"))
	assert.Contains(t, string(body), "\"Stroller\"")
}

func TestExportConfirmationsCSVEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/confirmations", models.CreateConfirmationRequest{
		Names: []string{"Ana"},
	}, false)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/admin/export/confirmations.csv", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	body := string(w.Body.Bytes()[3:])
	assert.True(t, strings.HasPrefix(body, "Name,Confirmed At"))
	assert.Contains(t, body, "\"Ana\"")
}

func TestUploadImageUnconfiguredReturns503(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/admin/images", nil, true)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
