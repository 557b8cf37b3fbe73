package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testConfigYAML = `---
plan:
  monthlyBudget: 400
  strategy: avalanche
loans:
  - name: Car loan
    principal: 6000
    interestRate: 5
    termMonths: 48
    active: true
creditCards:
  - name: Visa
    balance: 1500
    limit: 4000
    apr: 19
    minPayment: 40
    minPaymentPercent: 3
    active: true
scenarios:
  - name: Extra budget
    monthlyBudget: 550
`

func newTestHandler() http.Handler {
	return NewHandler(nil, 0, "test")
}

func uploadRequest(t *testing.T, target, yamlBody string, compare bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "config.yaml")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte(yamlBody)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if compare {
		if err := writer.WriteField("compare", "true"); err != nil {
			t.Fatalf("writing compare field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodePlanResponse(t *testing.T, rec *httptest.ResponseRecorder) planResponse {
	t.Helper()
	var response planResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return response
}

func TestHandlePlanUpload(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, uploadRequest(t, "/api/plan", testConfigYAML, false))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	response := decodePlanResponse(t, rec)
	if !response.Plan.Viable {
		t.Fatalf("plan not viable: %s", response.Plan.Message)
	}
	if response.Plan.Strategy != "avalanche" {
		t.Errorf("strategy = %s, want avalanche", response.Plan.Strategy)
	}
	if response.Plan.TotalMonths <= 0 {
		t.Errorf("TotalMonths = %d, want positive", response.Plan.TotalMonths)
	}
	if len(response.Plan.Allocations) != 2 {
		t.Errorf("got %d allocations, want 2", len(response.Plan.Allocations))
	}
	if len(response.Plan.Rows) != response.Plan.TotalMonths {
		t.Errorf("got %d rows, want %d", len(response.Plan.Rows), response.Plan.TotalMonths)
	}
	if !strings.HasPrefix(response.Plan.TotalPaidDisplay, "$") {
		t.Errorf("TotalPaidDisplay = %s, want currency string", response.Plan.TotalPaidDisplay)
	}
	if !strings.Contains(response.CSV, `"month"`) {
		t.Errorf("CSV missing header: %s", response.CSV)
	}
	if response.Comparison != nil {
		t.Errorf("comparison returned without compare flag")
	}
}

func TestHandlePlanUploadWithComparison(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, uploadRequest(t, "/api/plan", testConfigYAML, true))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	response := decodePlanResponse(t, rec)
	if len(response.Comparison) != 2 {
		t.Fatalf("got %d comparison entries, want 2 (baseline plus scenario)", len(response.Comparison))
	}

	var boosted *scenarioSummary
	for i := range response.Comparison {
		if response.Comparison[i].Name == "Extra budget" {
			boosted = &response.Comparison[i]
		}
	}
	if boosted == nil {
		t.Fatal("missing configured scenario in comparison")
	}
	if boosted.MonthsSaved <= 0 {
		t.Errorf("MonthsSaved = %d, want positive for a higher budget", boosted.MonthsSaved)
	}
}

func TestHandlePlanRejectsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plan", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandlePlanMissingFile(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("unused", "value")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/plan", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "missing configuration file") {
		t.Errorf("body = %s, want missing-file error", rec.Body.String())
	}
}

func TestHandlePlanInvalidConfig(t *testing.T) {
	invalid := `---
plan:
  monthlyBudget: 0
`
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, uploadRequest(t, "/api/plan", invalid, false))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "monthlyBudget") {
		t.Errorf("body = %s, want budget validation error", rec.Body.String())
	}
}

func TestHandlePlanUploadTooLarge(t *testing.T) {
	h := NewHandler(nil, 64, "test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "/api/plan", testConfigYAML, false))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestHandlePlanEditor(t *testing.T) {
	payload := map[string]interface{}{
		"config": map[string]interface{}{
			"plan": map[string]interface{}{
				"monthlyBudget": 300,
				"strategy":      "snowball",
			},
			"creditCards": []map[string]interface{}{
				{
					"name":       "Visa",
					"balance":    1200,
					"limit":      3000,
					"apr":        18,
					"minPayment": 35,
					"active":     true,
				},
			},
		},
		"options": map[string]interface{}{
			"compare": false,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/editor/plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	response := decodePlanResponse(t, rec)
	if !response.Plan.Viable {
		t.Fatalf("plan not viable: %s", response.Plan.Message)
	}
	if response.Plan.Strategy != "snowball" {
		t.Errorf("strategy = %s, want snowball", response.Plan.Strategy)
	}
	if response.ConfigYAML == "" {
		t.Error("expected echoed config YAML in response")
	}
}

func TestHandleConfigExportOrdersKeys(t *testing.T) {
	payload := map[string]interface{}{
		"plan":    map[string]interface{}{"monthlyBudget": 300},
		"loans":   []interface{}{},
		"logging": map[string]interface{}{"level": "info"},
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/editor/export", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	yaml := response["configYaml"]
	loggingIdx := strings.Index(yaml, "logging:")
	planIdx := strings.Index(yaml, "plan:")
	loansIdx := strings.Index(yaml, "loans:")
	if loggingIdx < 0 || planIdx < 0 || loansIdx < 0 {
		t.Fatalf("exported YAML missing keys:\n%s", yaml)
	}
	if !(loggingIdx < planIdx && planIdx < loansIdx) {
		t.Errorf("keys out of order (logging %d, plan %d, loans %d):\n%s", loggingIdx, planIdx, loansIdx, yaml)
	}
}

func TestHandleVersion(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response["version"] != "test" {
		t.Errorf("version = %s, want test", response["version"])
	}
}
