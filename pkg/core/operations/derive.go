// Package operations turns quote/order line items into an ordered routing.
package operations

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

// QualityControlName is the mandatory final operation of every derived routing
const QualityControlName = "Quality Control & Inspection"

// QualityControlHours is the fixed duration of the quality-control step
const QualityControlHours = 1.0

// processRule maps a description keyword to an operation type and its per-unit rate
type processRule struct {
	Keyword      string
	Label        string
	HoursPerUnit float64
}

// rules are checked in order; the first keyword found in the description wins
var rules = []processRule{
	{Keyword: "machining", Label: "CNC Machining", HoursPerUnit: 0.17},
	{Keyword: "welding", Label: "Welding", HoursPerUnit: 0.08},
	{Keyword: "assembly", Label: "Assembly", HoursPerUnit: 0.13},
}

var genericRule = processRule{Label: "Production", HoursPerUnit: 0.08}

// Derive builds an ordered operation list from line items.
//
// Each line item becomes one operation typed by keyword (case-insensitive substring
// match on the description). Estimated hours are rate × quantity, where the line
// item's own quantity wins over the job quantity when set. A one-hour quality
// control operation is always appended. Operation numbers run 1..n.
func Derive(items []model.LineItem, jobQuantity int) []model.Operation {
	ops := make([]model.Operation, 0, len(items)+1)

	for _, item := range items {
		rule := classify(item.Description)

		quantity := jobQuantity
		if item.Quantity > 0 {
			quantity = item.Quantity
		}
		// A zero quantity would produce a zero-hour operation, which the engine rejects
		quantity = max(quantity, 1)

		number := len(ops) + 1
		ops = append(ops, model.Operation{
			ID:              fmt.Sprintf("temp-%d", number),
			Name:            operationName(rule.Label, item.Description),
			OperationNumber: number,
			EstimatedHours:  roundHours(rule.HoursPerUnit * float64(quantity)),
		})
	}

	number := len(ops) + 1
	ops = append(ops, model.Operation{
		ID:              fmt.Sprintf("temp-%d", number),
		Name:            QualityControlName,
		OperationNumber: number,
		EstimatedHours:  QualityControlHours,
	})

	return ops
}

// TotalHours sums the estimated hours of a routing
func TotalHours(ops []model.Operation) float64 {
	total := 0.0
	for _, op := range ops {
		total += op.EstimatedHours
	}
	return roundHours(total)
}

func classify(description string) processRule {
	lower := strings.ToLower(description)
	for _, rule := range rules {
		if strings.Contains(lower, rule.Keyword) {
			return rule
		}
	}
	return genericRule
}

func operationName(label, description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return label
	}
	return fmt.Sprintf("%s - %s", label, description)
}

// roundHours rounds to hundredths so 0.17 * 10 reports as 1.7
func roundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}
