package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/store"
	"github.com/erazemk/trznica/internal/ws"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st := store.NewTestStore(t)
	hub := ws.NewHub()
	go hub.Run()

	router := NewRouter(st, hub, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func signupAndLogin(t *testing.T, server *httptest.Server, username, role string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": "password", "role": role})
	resp, err := http.Post(server.URL+"/api/auth/signup", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("signup request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup failed: %d", resp.StatusCode)
	}

	body, _ = json.Marshal(map[string]string{"username": username, "password": "password"})
	resp, err = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	if loginResp["token"] == "" {
		t.Fatal("empty token from login")
	}
	if loginResp["role"] != role {
		t.Fatalf("expected stored role %q, got %q", role, loginResp["role"])
	}
	return loginResp["token"]
}

func authRequest(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var data []byte
	if body != nil {
		data, _ = json.Marshal(body)
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func TestSignupDuplicate(t *testing.T) {
	server := setupTestServer(t)
	signupAndLogin(t, server, "alice", model.RoleFarmer)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "other", "role": model.RoleBuyer})
	resp, _ := http.Post(server.URL+"/api/auth/signup", "application/json", bytes.NewReader(body))
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate signup, got %d", resp.StatusCode)
	}
}

func TestLoginBadPassword(t *testing.T) {
	server := setupTestServer(t)
	signupAndLogin(t, server, "alice", model.RoleFarmer)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
}

func TestItemsRequireAuth(t *testing.T) {
	server := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/items")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestCreateAndListItems(t *testing.T) {
	server := setupTestServer(t)
	token := signupAndLogin(t, server, "alice", model.RoleFarmer)

	draft := model.ItemDraft{
		Name:        "Rice",
		Description: "Surplus harvest",
		Quantity:    "5kg",
		Price:       "10",
		Location:    "Farm A",
	}
	resp := authRequest(t, http.MethodPost, server.URL+"/api/items", token, draft)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created model.Item
	json.NewDecoder(resp.Body).Decode(&created)
	if created.Owner != "alice" {
		t.Errorf("expected owner 'alice', got %q", created.Owner)
	}
	if created.ID == 0 {
		t.Error("expected assigned id")
	}

	listResp := authRequest(t, http.MethodGet, server.URL+"/api/items", token, nil)
	defer listResp.Body.Close()

	var items []model.Item
	json.NewDecoder(listResp.Body).Decode(&items)
	if len(items) != 1 || items[0].Name != "Rice" {
		t.Errorf("expected listed item, got %v", items)
	}
}

func TestCreateItemValidation(t *testing.T) {
	server := setupTestServer(t)
	token := signupAndLogin(t, server, "alice", model.RoleFarmer)

	resp := authRequest(t, http.MethodPost, server.URL+"/api/items", token, model.ItemDraft{Name: "Rice"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var payload struct {
		Fields map[string]string `json:"fields"`
	}
	json.NewDecoder(resp.Body).Decode(&payload)
	if _, ok := payload.Fields["price"]; !ok {
		t.Errorf("expected field-level message for price, got %v", payload.Fields)
	}
}

func TestBuyFlowNotifiesOwner(t *testing.T) {
	server := setupTestServer(t)
	seller := signupAndLogin(t, server, "alice", model.RoleFarmer)
	buyer := signupAndLogin(t, server, "bob", model.RoleBuyer)

	draft := model.ItemDraft{
		Name:        "Rice",
		Description: "Surplus harvest",
		Quantity:    "5kg",
		Price:       "10",
		Location:    "Farm A",
	}
	resp := authRequest(t, http.MethodPost, server.URL+"/api/items", seller, draft)
	var created model.Item
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	buyResp := authRequest(t, http.MethodPost, server.URL+"/api/items/1/buy", buyer, nil)
	defer buyResp.Body.Close()
	if buyResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on buy, got %d", buyResp.StatusCode)
	}

	var receipt map[string]any
	json.NewDecoder(buyResp.Body).Decode(&receipt)
	if receipt["location"] != "Farm A" {
		t.Errorf("expected location 'Farm A', got %v", receipt["location"])
	}

	// Catalog is now empty.
	listResp := authRequest(t, http.MethodGet, server.URL+"/api/items", buyer, nil)
	var items []model.Item
	json.NewDecoder(listResp.Body).Decode(&items)
	listResp.Body.Close()
	if len(items) != 0 {
		t.Errorf("expected empty catalog after buy, got %v", items)
	}

	// The seller has exactly one notification.
	inboxResp := authRequest(t, http.MethodGet, server.URL+"/api/notifications", seller, nil)
	var notifications []model.Notification
	json.NewDecoder(inboxResp.Body).Decode(&notifications)
	inboxResp.Body.Close()
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	want := "bob has ordered 5kg of Rice from Farm A."
	if notifications[0].Message != want {
		t.Errorf("expected %q, got %q", want, notifications[0].Message)
	}
}

func TestBuyUnknownItem(t *testing.T) {
	server := setupTestServer(t)
	token := signupAndLogin(t, server, "bob", model.RoleBuyer)

	resp := authRequest(t, http.MethodPost, server.URL+"/api/items/42/buy", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	server := setupTestServer(t)
	seller := signupAndLogin(t, server, "alice", model.RoleFarmer)
	other := signupAndLogin(t, server, "mallory", model.RoleBusiness)

	draft := model.ItemDraft{
		Name:        "Rice",
		Description: "Surplus harvest",
		Quantity:    "5kg",
		Price:       "10",
		Location:    "Farm A",
	}
	resp := authRequest(t, http.MethodPost, server.URL+"/api/items", seller, draft)
	resp.Body.Close()

	forbidden := authRequest(t, http.MethodDelete, server.URL+"/api/items/1", other, nil)
	forbidden.Body.Close()
	if forbidden.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for non-owner delete, got %d", forbidden.StatusCode)
	}

	allowed := authRequest(t, http.MethodDelete, server.URL+"/api/items/1", seller, nil)
	allowed.Body.Close()
	if allowed.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for owner delete, got %d", allowed.StatusCode)
	}

	again := authRequest(t, http.MethodDelete, server.URL+"/api/items/1", seller, nil)
	again.Body.Close()
	if again.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for repeated delete, got %d", again.StatusCode)
	}
}

func TestNotificationsSellerOnly(t *testing.T) {
	server := setupTestServer(t)
	token := signupAndLogin(t, server, "bob", model.RoleBuyer)

	resp := authRequest(t, http.MethodGet, server.URL+"/api/notifications", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for buyer inbox, got %d", resp.StatusCode)
	}
}

func TestClearNotifications(t *testing.T) {
	server := setupTestServer(t)
	seller := signupAndLogin(t, server, "alice", model.RoleFarmer)
	buyer := signupAndLogin(t, server, "bob", model.RoleBuyer)

	draft := model.ItemDraft{
		Name:        "Rice",
		Description: "Surplus harvest",
		Quantity:    "5kg",
		Price:       "10",
		Location:    "Farm A",
	}
	resp := authRequest(t, http.MethodPost, server.URL+"/api/items", seller, draft)
	resp.Body.Close()
	buyResp := authRequest(t, http.MethodPost, server.URL+"/api/items/1/buy", buyer, nil)
	buyResp.Body.Close()

	clearResp := authRequest(t, http.MethodDelete, server.URL+"/api/notifications", seller, nil)
	clearResp.Body.Close()
	if clearResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on clear, got %d", clearResp.StatusCode)
	}

	inboxResp := authRequest(t, http.MethodGet, server.URL+"/api/notifications", seller, nil)
	var notifications []model.Notification
	json.NewDecoder(inboxResp.Body).Decode(&notifications)
	inboxResp.Body.Close()
	if len(notifications) != 0 {
		t.Errorf("expected empty inbox after clear, got %v", notifications)
	}
}
