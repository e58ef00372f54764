package compliance

import (
	"fmt"
	"time"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
)

// Engine is the stateless labor-law rule engine. It holds only the legal
// thresholds and the resolved reference timezone, so a single instance is
// safe for concurrent use.
type Engine struct {
	limits compliance.Limits
	loc    *time.Location
}

var _ compliance.Validator = (*Engine)(nil)

func NewEngine(limits compliance.Limits) (*Engine, error) {
	loc, err := time.LoadLocation(limits.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", compliance.ErrInvalidTimezone, limits.Timezone)
	}
	return &Engine{limits: limits, loc: loc}, nil
}

// rule ties a rule kind to its evaluator over a full validation context.
type rule struct {
	kind     compliance.RuleKind
	evaluate func(e *Engine, vc compliance.Context) compliance.Result
}

// ruleTable fixes the reporting order of ValidateAll.
var ruleTable = []rule{
	{compliance.RuleDailyLimit, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidateDailyLimit(vc.AllEntries, vc.CurrentEntry.ClockIn)
	}},
	{compliance.RuleWeeklyLimit, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidateWeeklyLimit(vc.AllEntries, vc.CurrentEntry.ClockIn)
	}},
	{compliance.RuleRestPeriod, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidateRestPeriod(vc.AllEntries)
	}},
	{compliance.RuleMandatoryBreak, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidateMandatoryBreak(vc.CurrentEntry, vc.Breaks)
	}},
	{compliance.RuleContinuousWork, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidateContinuousWork(vc.CurrentEntry, vc.Breaks)
	}},
	{compliance.RuleWeeklyRest, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidateWeeklyRest(vc.AllEntries, vc.CurrentEntry.ClockIn)
	}},
	{compliance.RuleNightWork, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidateNightWork(vc.CurrentEntry)
	}},
	{compliance.RuleOvertime, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidateOvertime(vc.AllEntries, vc.CurrentEntry.ClockIn)
	}},
	{compliance.RuleAbsoluteWeeklyMax, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidateAbsoluteWeeklyMax(vc.AllEntries, vc.CurrentEntry.ClockIn)
	}},
	{compliance.RuleMinorRestrictions, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidateMinorRestrictions(vc.CurrentEntry, vc.AllEntries, vc.UserAge)
	}},
	{compliance.RulePregnantWorker, func(e *Engine, vc compliance.Context) compliance.Result {
		return e.ValidatePregnantWorker(vc.CurrentEntry, vc.IsPregnant)
	}},
	{compliance.RuleGeofence, func(e *Engine, vc compliance.Context) compliance.Result {
		if vc.UserCoords == nil || vc.SiteCoords == nil {
			return pass(compliance.RuleGeofence, refGeofence,
				"No location recorded for this entry; geofence not evaluated")
		}
		return e.ValidateGeofence(*vc.UserCoords, *vc.SiteCoords)
	}},
}

// ValidateAll implements compliance.Validator. All twelve rules always run;
// results come back in the fixed table order with no cross-rule
// short-circuiting.
func (e *Engine) ValidateAll(vc compliance.Context) ([]compliance.Result, error) {
	present := false
	for _, entry := range vc.AllEntries {
		if entry.ID == vc.CurrentEntry.ID {
			present = true
			break
		}
	}
	if !present {
		return nil, compliance.ErrEntryNotInHistory
	}

	results := make([]compliance.Result, 0, len(ruleTable))
	for _, r := range ruleTable {
		results = append(results, r.evaluate(e, vc))
	}
	return results, nil
}

// ValidateRule implements compliance.Validator.
func (e *Engine) ValidateRule(kind compliance.RuleKind, vc compliance.Context) (compliance.Result, error) {
	for _, r := range ruleTable {
		if r.kind == kind {
			return r.evaluate(e, vc), nil
		}
	}
	return compliance.Result{}, fmt.Errorf("%w: %q", compliance.ErrUnknownRule, kind)
}
