// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/constants"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/debts"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/loans"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a repayment plan run.
type Configuration struct {
	Plan        PlanConfig
	Loans       []LoanConfig
	CreditCards []CardConfig
	Scenarios   []ScenarioConfig
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
}

// PlanConfig holds the budget and strategy shared by the main simulation and
// any scenario that does not override them.
type PlanConfig struct {
	MonthlyBudget float64
	Strategy      string
}

// LoanConfig describes one installment loan.
type LoanConfig struct {
	ID            string
	Name          string
	Principal     float64
	InterestRate  float64
	TermMonths    int
	Scheme        string
	InterestType  string
	CustomPayment float64
	MonthlyFee    float64
	Active        bool
}

// CardConfig describes one revolving credit card.
type CardConfig struct {
	ID                string
	Name              string
	Balance           float64
	Limit             float64
	APR               float64
	MinPayment        float64
	MinPaymentPercent float64
	FullPayment       bool
	Active            bool
}

// ScenarioConfig describes one what-if variant of the plan.
type ScenarioConfig struct {
	ID                 string
	Name               string
	MonthlyBudget      float64
	AnnualExtraPayment float64
	RateAdjustment     float64
	Strategy           string
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// arbitrary reader, such as an uploaded file.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills in identifiers and fallback values the config file may
// omit. Every loan, card, and scenario without an explicit ID receives a
// generated one so plan entries stay addressable.
func (conf *Configuration) ApplyDefaults() {
	if conf.Plan.Strategy == "" {
		conf.Plan.Strategy = string(debts.MethodAvalanche)
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if conf.Logging.Level == "" {
		conf.Logging.Level = "info"
	}
	if conf.Logging.Format == "" {
		conf.Logging.Format = "console"
	}

	for i := range conf.Loans {
		if conf.Loans[i].ID == "" {
			conf.Loans[i].ID = uuid.NewString()
		}
		if conf.Loans[i].Scheme == "" {
			conf.Loans[i].Scheme = string(loans.SchemeAnnuity)
		}
		if conf.Loans[i].InterestType == "" {
			conf.Loans[i].InterestType = string(loans.InterestFixed)
		}
	}
	for i := range conf.CreditCards {
		if conf.CreditCards[i].ID == "" {
			conf.CreditCards[i].ID = uuid.NewString()
		}
	}
	for i := range conf.Scenarios {
		if conf.Scenarios[i].ID == "" {
			conf.Scenarios[i].ID = uuid.NewString()
		}
		if conf.Scenarios[i].MonthlyBudget == 0 {
			conf.Scenarios[i].MonthlyBudget = conf.Plan.MonthlyBudget
		}
		if conf.Scenarios[i].Strategy == "" {
			conf.Scenarios[i].Strategy = conf.Plan.Strategy
		}
	}
}

// Validate reports hard errors that make the configuration unusable.
func (conf *Configuration) Validate() error {
	if conf.Plan.MonthlyBudget <= 0 {
		return fmt.Errorf("plan.monthlyBudget must be positive, got %.2f", conf.Plan.MonthlyBudget)
	}
	if !debts.Method(conf.Plan.Strategy).Valid() {
		return fmt.Errorf("plan.strategy %q is not one of avalanche, snowball, equal", conf.Plan.Strategy)
	}
	for _, scenario := range conf.Scenarios {
		if !debts.Method(scenario.Strategy).Valid() {
			return fmt.Errorf("scenario %q strategy %q is not one of avalanche, snowball, equal",
				scenario.Name, scenario.Strategy)
		}
	}
	if len(conf.Loans) == 0 && len(conf.CreditCards) == 0 {
		return fmt.Errorf("configuration defines no loans or credit cards")
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	for _, loanConf := range conf.Loans {
		warnings = append(warnings, validation.ValidateLoan(loanConf.ToLoan())...)
	}
	for _, cardConf := range conf.CreditCards {
		warnings = append(warnings, validation.ValidateCard(cardConf.ToCard())...)
	}

	debtList, err := conf.ToDebts()
	if err == nil {
		warnings = append(warnings, validation.ValidateBudget(conf.Plan.MonthlyBudget, debtList)...)
	}

	return warnings
}
