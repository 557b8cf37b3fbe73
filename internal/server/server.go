// Package server exposes the repayment planner over HTTP as a JSON API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nissenemj/loan-simulate-harmony-sub000/internal/config"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/constants"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/debts"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/format"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/output"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/repayment"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/scenarios"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

type planOptions struct {
	Compare bool
}

// NewHandler constructs the HTTP handler that serves the repayment plan API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Plan API endpoint (file upload)
	mux.HandleFunc("/api/plan", h.handlePlan)

	// Plan API endpoint for editor-driven updates
	mux.HandleFunc("/api/editor/plan", h.handlePlanEditor)

	// Config serialization endpoint for editor downloads
	mux.HandleFunc("/api/editor/export", h.handleConfigExport)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type planResponse struct {
	Plan       planSummary       `json:"plan"`
	Comparison []scenarioSummary `json:"comparison,omitempty"`
	CSV        string            `json:"csv"`
	Warnings   []string          `json:"warnings,omitempty"`
	Duration   string            `json:"duration"`
	ConfigYAML string            `json:"configYaml,omitempty"`
}

type planSummary struct {
	Strategy             string           `json:"strategy"`
	Viable               bool             `json:"viable"`
	Message              string           `json:"message,omitempty"`
	TotalMonths          int              `json:"totalMonths"`
	PayoffDate           string           `json:"payoffDate,omitempty"`
	MonthlyPayment       float64          `json:"monthlyPayment"`
	TotalPaid            float64          `json:"totalPaid"`
	TotalPaidDisplay     string           `json:"totalPaidDisplay"`
	TotalInterest        float64          `json:"totalInterest"`
	TotalInterestDisplay string           `json:"totalInterestDisplay"`
	Allocations          []allocationJSON `json:"allocations,omitempty"`
	Rows                 []planRow        `json:"rows,omitempty"`
}

type allocationJSON struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	MinPayment   float64 `json:"minPayment"`
	ExtraPayment float64 `json:"extraPayment"`
	TotalPayment float64 `json:"totalPayment"`
	TotalDisplay string  `json:"totalDisplay"`
}

type planRow struct {
	Month     int          `json:"month"`
	Remaining float64      `json:"remaining"`
	Paid      float64      `json:"paid"`
	Interest  float64      `json:"interest"`
	Debts     []debtColumn `json:"debts,omitempty"`
}

type debtColumn struct {
	ID      string  `json:"id"`
	Balance float64 `json:"balance"`
	Payment float64 `json:"payment"`
}

type scenarioSummary struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Viable               bool    `json:"viable"`
	TotalMonths          int     `json:"totalMonths"`
	PayoffDate           string  `json:"payoffDate,omitempty"`
	TotalInterest        float64 `json:"totalInterest"`
	TotalInterestDisplay string  `json:"totalInterestDisplay"`
	MonthsSaved          int     `json:"monthsSaved"`
	InterestSaved        float64 `json:"interestSaved"`
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handlePlan"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err))
		return
	}

	options := planOptions{Compare: coerceBool(r.FormValue("compare"))}
	h.runPlan(r.Context(), w, buf.Bytes(), start, "server.handlePlan", options)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handlePlanEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handlePlanEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handlePlanEditor")
			return
		}
		configPayload = cfgMap
	}

	options := planOptions{}
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid options payload: expected object", "server.handlePlanEditor")
			return
		}
		if compareVal, ok := optsMap["compare"]; ok {
			options.Compare = coerceBool(compareVal)
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handlePlanEditor")
		return
	}

	h.runPlan(r.Context(), w, configBytes, start, "server.handlePlanEditor", options)
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "plan"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) runPlan(ctx context.Context, w http.ResponseWriter, configBytes []byte, start time.Time, op string, opts planOptions) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if err := cfg.Validate(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	debtList, err := cfg.ToDebts()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to normalize debts: %v", err), op)
		return
	}

	sim := repayment.NewSimulator(h.logger)
	plan, err := sim.Simulate(debtList, cfg.Plan.MonthlyBudget, debts.Method(cfg.Plan.Strategy))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to compute repayment plan: %v", err), op)
		return
	}

	var comparison *scenarios.Comparison
	if opts.Compare && len(cfg.Scenarios) > 0 {
		runner := scenarios.NewRunner(h.logger)
		result, err := runner.Compare(ctx, debtList, cfg.ToScenarios(), config.BaselineScenarioID)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to compare scenarios: %v", err), op)
			return
		}
		comparison = &result
	}

	elapsed := time.Since(start)

	response := planResponse{
		Plan:       buildPlanSummary(plan),
		Comparison: buildComparison(comparison),
		CSV:        output.CsvString(plan),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		ConfigYAML: string(configBytes),
	}

	h.logger.Info("repayment plan computed",
		zap.String("op", op),
		zap.Bool("viable", plan.IsViable),
		zap.Int("months", plan.TotalMonths),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func buildPlanSummary(plan repayment.Plan) planSummary {
	summary := planSummary{
		Strategy:             string(plan.Strategy),
		Viable:               plan.IsViable,
		Message:              plan.InsufficientBudgetMessage,
		TotalMonths:          plan.TotalMonths,
		PayoffDate:           plan.PayoffDate,
		MonthlyPayment:       plan.MonthlyPayment,
		TotalPaid:            plan.TotalPaid,
		TotalPaidDisplay:     format.Currency(plan.TotalPaid),
		TotalInterest:        plan.TotalInterestPaid,
		TotalInterestDisplay: format.Currency(plan.TotalInterestPaid),
	}

	for _, alloc := range plan.MonthlyAllocation {
		summary.Allocations = append(summary.Allocations, allocationJSON{
			ID:           alloc.ID,
			Name:         alloc.Name,
			Kind:         string(alloc.Kind),
			MinPayment:   alloc.MinPayment,
			ExtraPayment: alloc.ExtraPayment,
			TotalPayment: alloc.TotalPayment,
			TotalDisplay: format.Currency(alloc.TotalPayment),
		})
	}

	for _, snapshot := range plan.Timeline {
		row := planRow{
			Month:     snapshot.Month,
			Remaining: snapshot.TotalRemaining,
			Paid:      snapshot.TotalPaid,
			Interest:  snapshot.TotalInterestPaid,
		}
		for _, entry := range snapshot.Debts {
			row.Debts = append(row.Debts, debtColumn{
				ID:      entry.ID,
				Balance: entry.RemainingBalance,
				Payment: entry.Payment,
			})
		}
		summary.Rows = append(summary.Rows, row)
	}

	return summary
}

func buildComparison(comparison *scenarios.Comparison) []scenarioSummary {
	if comparison == nil {
		return nil
	}

	summaries := make([]scenarioSummary, 0, len(comparison.Outcomes))
	for _, outcome := range comparison.Outcomes {
		summary := scenarioSummary{
			ID:                   outcome.Scenario.ID,
			Name:                 outcome.Scenario.Name,
			Viable:               outcome.Plan.IsViable,
			TotalMonths:          outcome.Plan.TotalMonths,
			PayoffDate:           outcome.Plan.PayoffDate,
			TotalInterest:        outcome.Plan.TotalInterestPaid,
			TotalInterestDisplay: format.Currency(outcome.Plan.TotalInterestPaid),
		}
		for _, delta := range comparison.Deltas {
			if delta.ScenarioID == outcome.Scenario.ID && delta.Viable {
				summary.MonthsSaved = delta.MonthsSaved
				summary.InterestSaved = delta.InterestSaved
				break
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondErrorWithOp(w, status, msg, "server.handlePlan")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("plan request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed != 0
		}
	}
	return false
}
