package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/open-nie/events-backend/config"
	"github.com/open-nie/events-backend/controllers"
	"github.com/open-nie/events-backend/database"
	"github.com/open-nie/events-backend/logger"
	"github.com/open-nie/events-backend/routes"
	"github.com/open-nie/events-backend/utils"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	database.DB = db

	cfg := config.Config{
		EmailDomain: "@nie.ac.in",
		UploadDir:   t.TempDir(),
		JWTSecret:   "test-secret",
	}
	utils.SetJWTSecret(cfg.JWTSecret)
	controllers.Init(cfg, logger.NewNop())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			parsed = nil
		}
	}
	return w, parsed
}

func doForm(t *testing.T, router *gin.Engine, method, path, token string, form url.Values) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			parsed = nil
		}
	}
	return w, parsed
}

func registerAccount(t *testing.T, router *gin.Engine, role string, n int) string {
	t.Helper()
	body := map[string]interface{}{
		"role":            role,
		"name":            fmt.Sprintf("%s %d", role, n),
		"email":           fmt.Sprintf("%s%d@nie.ac.in", role, n),
		"password":        "hunter22",
		"confirmPassword": "hunter22",
		"department":      "CSE",
		"usn":             fmt.Sprintf("4NI21CS%03d", n),
		"semester":        "5",
	}
	w, parsed := doJSON(t, router, http.MethodPost, "/api/auth/register", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("account registration failed (%d): %s", w.Code, w.Body.String())
	}
	token, _ := parsed["token"].(string)
	if token == "" {
		t.Fatal("expected a session token")
	}
	return token
}

func createEventForm(maxParticipants string) url.Values {
	form := url.Values{}
	form.Set("title", "Hackathon")
	form.Set("department", "CSE")
	form.Set("date", "2026-10-10")
	form.Set("time", "09:00")
	form.Set("location", "Main Hall")
	if maxParticipants != "" {
		form.Set("max_participants", maxParticipants)
	}
	return form
}

func TestRegistrationAndScanFlow(t *testing.T) {
	router := setupRouter(t)

	organiserToken := registerAccount(t, router, "organiser", 1)
	studentToken := registerAccount(t, router, "student", 1)

	// Organiser creates an event with two spots.
	w, parsed := doForm(t, router, http.MethodPost, "/api/organiser/create-event", organiserToken, createEventForm("2"))
	if w.Code != http.StatusCreated {
		t.Fatalf("event creation failed (%d): %s", w.Code, w.Body.String())
	}
	eventID := uint(parsed["eventId"].(float64))

	// Student registers and receives a check-in token.
	w, parsed = doJSON(t, router, http.MethodPost, "/api/registrations/", studentToken,
		map[string]interface{}{"event_id": eventID})
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed (%d): %s", w.Code, w.Body.String())
	}
	qrCode, _ := parsed["qr_code"].(string)
	if qrCode == "" {
		t.Fatal("expected qr_code in registration response")
	}

	// Registering twice is a conflict.
	w, _ = doJSON(t, router, http.MethodPost, "/api/registrations/", studentToken,
		map[string]interface{}{"event_id": eventID})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate registration, got %d", w.Code)
	}

	// The student sees the registration in their list.
	req := httptest.NewRequest(http.MethodGet, "/api/registrations/my-registrations", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("my-registrations failed (%d): %s", rec.Code, rec.Body.String())
	}
	var mine []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &mine); err != nil || len(mine) != 1 {
		t.Fatalf("expected one registration, got %s", rec.Body.String())
	}

	// Students cannot reach the organiser scan station.
	w, _ = doJSON(t, router, http.MethodPost, "/api/scan-qr", studentToken,
		map[string]interface{}{"qr_code": qrCode})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student scan, got %d", w.Code)
	}

	// The owning organiser checks the student in.
	w, parsed = doJSON(t, router, http.MethodPost, "/api/scan-qr", organiserToken,
		map[string]interface{}{"qr_code": qrCode})
	if w.Code != http.StatusOK {
		t.Fatalf("scan failed (%d): %s", w.Code, w.Body.String())
	}
	participant, _ := parsed["participant"].(map[string]interface{})
	if participant == nil || participant["checked_in"] != true {
		t.Fatalf("expected checked-in participant, got %s", w.Body.String())
	}

	// A second scan is reported as already checked in.
	w, _ = doJSON(t, router, http.MethodPost, "/api/scan-qr", organiserToken,
		map[string]interface{}{"qr_code": qrCode})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate scan, got %d", w.Code)
	}

	// A different organiser is not authorized for this event.
	otherToken := registerAccount(t, router, "organiser", 2)
	w, _ = doJSON(t, router, http.MethodPost, "/api/scan-qr", otherToken,
		map[string]interface{}{"qr_code": qrCode})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign organiser, got %d", w.Code)
	}
}

func TestSelfCheckInEndpoint(t *testing.T) {
	router := setupRouter(t)

	organiserToken := registerAccount(t, router, "organiser", 1)
	studentToken := registerAccount(t, router, "student", 1)

	w, parsed := doForm(t, router, http.MethodPost, "/api/organiser/create-event", organiserToken, createEventForm(""))
	if w.Code != http.StatusCreated {
		t.Fatalf("event creation failed (%d): %s", w.Code, w.Body.String())
	}
	eventID := uint(parsed["eventId"].(float64))

	w, parsed = doJSON(t, router, http.MethodPost, "/api/registrations/", studentToken,
		map[string]interface{}{"event_id": eventID})
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed (%d): %s", w.Code, w.Body.String())
	}
	qrCode := parsed["qr_code"].(string)

	// Kiosk flow: the token alone is the credential.
	w, parsed = doJSON(t, router, http.MethodPost, "/api/registrations/checkin", studentToken,
		map[string]interface{}{"qr_code": qrCode})
	if w.Code != http.StatusOK {
		t.Fatalf("self check-in failed (%d): %s", w.Code, w.Body.String())
	}
	if parsed["event_title"] != "Hackathon" {
		t.Fatalf("expected event title, got %s", w.Body.String())
	}

	w, _ = doJSON(t, router, http.MethodPost, "/api/registrations/checkin", studentToken,
		map[string]interface{}{"qr_code": qrCode})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on repeat self check-in, got %d", w.Code)
	}
}

func TestCancelRegistrationEndpoint(t *testing.T) {
	router := setupRouter(t)

	organiserToken := registerAccount(t, router, "organiser", 1)
	studentToken := registerAccount(t, router, "student", 1)
	intruderToken := registerAccount(t, router, "student", 2)

	w, parsed := doForm(t, router, http.MethodPost, "/api/organiser/create-event", organiserToken, createEventForm(""))
	if w.Code != http.StatusCreated {
		t.Fatalf("event creation failed (%d): %s", w.Code, w.Body.String())
	}
	eventID := uint(parsed["eventId"].(float64))

	w, parsed = doJSON(t, router, http.MethodPost, "/api/registrations/", studentToken,
		map[string]interface{}{"event_id": eventID})
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed (%d): %s", w.Code, w.Body.String())
	}
	regID := uint(parsed["registration_id"].(float64))

	// Someone else's registration id reads as not found.
	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/registrations/%d", regID), intruderToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign cancel, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/registrations/%d", regID), studentToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel failed (%d): %s", w.Code, w.Body.String())
	}

	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/registrations/%d", regID), studentToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after cancel, got %d", w.Code)
	}
}
