package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one fulfillment test scenario: a seeded catalog, a
// sequence of desk operations, and the expected end state.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden trace.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Products seeds the catalog and sales history.
	Products []ProductSeed `yaml:"products"`

	// Lots seeds inventory lots, recalled or not.
	Lots []LotSeed `yaml:"lots,omitempty"`

	// Steps is the operation sequence to drive through the desk.
	Steps []Step `yaml:"steps"`

	// Expect describes the required end state after all steps.
	Expect FinalState `yaml:"expect"`
}

// ProductSeed seeds one product with an optional flat sales history.
type ProductSeed struct {
	SKU        string `yaml:"sku"`
	Name       string `yaml:"name"`
	Stock      int    `yaml:"stock"`
	DailySales int    `yaml:"daily_sales,omitempty"`
	SalesDays  int    `yaml:"sales_days,omitempty"`
}

// LotSeed seeds one inventory lot.
type LotSeed struct {
	ID       string `yaml:"id"`
	SKU      string `yaml:"sku"`
	Recalled bool   `yaml:"recalled,omitempty"`
}

// Step is one desk operation. Exactly one of the operation fields
// should be set.
type Step struct {
	// Intake admits a new order.
	Intake *IntakeStep `yaml:"intake,omitempty"`

	// Dispatch ships the named order.
	Dispatch string `yaml:"dispatch,omitempty"`

	// Resolve re-validates the named blocked order.
	Resolve string `yaml:"resolve,omitempty"`

	// MarkShipped flips the named order to SHIPPED directly in the
	// ledger, simulating an external actor the desk must reconcile with.
	MarkShipped string `yaml:"mark_shipped,omitempty"`

	// Reconcile runs one reconciliation pass.
	Reconcile bool `yaml:"reconcile,omitempty"`

	// Expect validates the step outcome. If nil the step must simply
	// not return an error.
	Expect *StepExpect `yaml:"expect,omitempty"`
}

// IntakeStep describes an order to admit. An empty id draws from the
// scenario's sequential generator.
type IntakeStep struct {
	ID   string `yaml:"id,omitempty"`
	SKU  string `yaml:"sku"`
	Qty  int    `yaml:"qty"`
	Tier string `yaml:"tier,omitempty"`
	Lot  string `yaml:"lot,omitempty"`
}

// StepExpect specifies the expected outcome of a step.
type StepExpect struct {
	// Queued expects the intake to land on the shipment queue.
	Queued bool `yaml:"queued,omitempty"`

	// Blocked expects the intake or resolve to land in the registry.
	Blocked bool `yaml:"blocked,omitempty"`

	// Reason is the expected block reason when Blocked is set.
	Reason string `yaml:"reason,omitempty"`

	// Error is the expected error code (e.g. "INSUFFICIENT_STOCK").
	Error string `yaml:"error,omitempty"`
}

// FinalState describes the required end state of the desk.
type FinalState struct {
	// Queue is the expected shipment queue, highest priority first.
	Queue []string `yaml:"queue"`

	// Blocked is the expected blocked order ids, oldest first.
	Blocked []string `yaml:"blocked"`
}

// Validate checks a scenario for structural mistakes before it runs.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if len(s.Products) == 0 {
		return fmt.Errorf("scenario %q seeds no products", s.Name)
	}
	for i, step := range s.Steps {
		ops := 0
		if step.Intake != nil {
			ops++
		}
		if step.Dispatch != "" {
			ops++
		}
		if step.Resolve != "" {
			ops++
		}
		if step.MarkShipped != "" {
			ops++
		}
		if step.Reconcile {
			ops++
		}
		if ops != 1 {
			return fmt.Errorf("scenario %q step %d: want exactly one operation, got %d", s.Name, i, ops)
		}
	}
	return nil
}

// LoadScenario parses a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScenarioDir loads every *.yaml scenario in a directory, sorted by
// filename so test order is stable.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
