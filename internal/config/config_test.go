package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/debts"
)

const testYAML = `---
plan:
  monthlyBudget: 500
  strategy: snowball
loans:
  - name: Car loan
    principal: 12000
    interestRate: 4.5
    termMonths: 60
    monthlyFee: 5
    active: true
creditCards:
  - id: visa-1
    name: Visa
    balance: 2000
    limit: 5000
    apr: 19
    minPayment: 30
    minPaymentPercent: 3
    active: true
scenarios:
  - name: Extra budget
    monthlyBudget: 650
logging:
  level: debug
  format: console
output:
  format: csv
`

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeTestConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Plan.MonthlyBudget != 500 {
		t.Errorf("Plan.MonthlyBudget = %.2f, want 500.00", conf.Plan.MonthlyBudget)
	}
	if conf.Plan.Strategy != "snowball" {
		t.Errorf("Plan.Strategy = %s, want snowball", conf.Plan.Strategy)
	}
	if len(conf.Loans) != 1 || len(conf.CreditCards) != 1 {
		t.Fatalf("got %d loans and %d cards, want 1 and 1", len(conf.Loans), len(conf.CreditCards))
	}
	if conf.Loans[0].MonthlyFee != 5 {
		t.Errorf("loan MonthlyFee = %.2f, want 5.00", conf.Loans[0].MonthlyFee)
	}
	if conf.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", conf.Logging.Level)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Output.Format = %s, want csv", conf.Output.Format)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestApplyDefaults(t *testing.T) {
	conf, err := LoadConfiguration(writeTestConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Loans[0].ID == "" {
		t.Error("loan without explicit ID should receive a generated one")
	}
	if conf.Loans[0].Scheme != "annuity" {
		t.Errorf("loan Scheme = %s, want annuity default", conf.Loans[0].Scheme)
	}
	if conf.Loans[0].InterestType != "fixed" {
		t.Errorf("loan InterestType = %s, want fixed default", conf.Loans[0].InterestType)
	}
	if conf.CreditCards[0].ID != "visa-1" {
		t.Errorf("explicit card ID overwritten: %s", conf.CreditCards[0].ID)
	}
	if conf.Scenarios[0].ID == "" {
		t.Error("scenario without explicit ID should receive a generated one")
	}
	if conf.Scenarios[0].Strategy != "snowball" {
		t.Errorf("scenario Strategy = %s, want plan default snowball", conf.Scenarios[0].Strategy)
	}
}

func TestApplyDefaultsEmptyConfig(t *testing.T) {
	var conf Configuration
	conf.ApplyDefaults()

	if conf.Plan.Strategy != "avalanche" {
		t.Errorf("Plan.Strategy = %s, want avalanche default", conf.Plan.Strategy)
	}
	if conf.Output.Format != "pretty" {
		t.Errorf("Output.Format = %s, want pretty default", conf.Output.Format)
	}
	if conf.Logging.Level != "info" || conf.Logging.Format != "console" {
		t.Errorf("logging defaults = %+v", conf.Logging)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Configuration)
		wantErr string
	}{
		{
			name:   "valid configuration",
			mutate: func(conf *Configuration) {},
		},
		{
			name:    "zero budget",
			mutate:  func(conf *Configuration) { conf.Plan.MonthlyBudget = 0 },
			wantErr: "monthlyBudget",
		},
		{
			name:    "unknown strategy",
			mutate:  func(conf *Configuration) { conf.Plan.Strategy = "waterfall" },
			wantErr: "strategy",
		},
		{
			name: "unknown scenario strategy",
			mutate: func(conf *Configuration) {
				conf.Scenarios[0].Strategy = "waterfall"
			},
			wantErr: "strategy",
		},
		{
			name: "no debts",
			mutate: func(conf *Configuration) {
				conf.Loans = nil
				conf.CreditCards = nil
			},
			wantErr: "no loans or credit cards",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conf, err := LoadConfiguration(writeTestConfig(t, testYAML))
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			tc.mutate(conf)

			err = conf.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf, err := LoadConfiguration(writeTestConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("unexpected warnings for healthy config: %v", warnings)
	}

	conf.CreditCards[0].Balance = 6000
	warnings := conf.ValidateConfiguration()
	if len(warnings) == 0 {
		t.Fatal("expected over-limit warning")
	}
	if !strings.Contains(strings.Join(warnings, "\n"), "exceeds its credit limit") {
		t.Errorf("warnings = %v, want over-limit warning", warnings)
	}
}

func TestToDebts(t *testing.T) {
	conf, err := LoadConfiguration(writeTestConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	debtList, err := conf.ToDebts()
	if err != nil {
		t.Fatalf("ToDebts() error = %v", err)
	}
	if len(debtList) != 2 {
		t.Fatalf("got %d debts, want 2", len(debtList))
	}

	var loanDebt, cardDebt *debts.Debt
	for i := range debtList {
		switch debtList[i].Kind {
		case debts.KindLoan:
			loanDebt = &debtList[i]
		case debts.KindRevolving:
			cardDebt = &debtList[i]
		}
	}
	if loanDebt == nil || cardDebt == nil {
		t.Fatalf("missing expected debt kinds: %+v", debtList)
	}
	if loanDebt.MonthlyFee != 5 {
		t.Errorf("loan debt MonthlyFee = %.2f, want 5.00", loanDebt.MonthlyFee)
	}
	if cardDebt.ID != "visa-1" {
		t.Errorf("card debt ID = %s, want visa-1", cardDebt.ID)
	}
}

func TestToScenariosIncludesBaseline(t *testing.T) {
	conf, err := LoadConfiguration(writeTestConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	scenarioList := conf.ToScenarios()
	if len(scenarioList) != 2 {
		t.Fatalf("got %d scenarios, want 2 (baseline plus configured)", len(scenarioList))
	}
	if scenarioList[0].ID != BaselineScenarioID {
		t.Errorf("first scenario = %s, want %s", scenarioList[0].ID, BaselineScenarioID)
	}
	if scenarioList[0].MonthlyBudget != 500 {
		t.Errorf("baseline budget = %.2f, want 500.00", scenarioList[0].MonthlyBudget)
	}
	if scenarioList[1].MonthlyBudget != 650 {
		t.Errorf("configured scenario budget = %.2f, want 650.00", scenarioList[1].MonthlyBudget)
	}
	if scenarioList[1].Strategy != debts.MethodSnowball {
		t.Errorf("configured scenario strategy = %s, want snowball inherited", scenarioList[1].Strategy)
	}
}
