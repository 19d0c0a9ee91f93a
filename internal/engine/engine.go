// ABOUTME: Aggregation pipeline: replays entries chronologically and evaluates
// ABOUTME: calculated-metric formulas against a forward-filled running context.
package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/harperreed/longevity/internal/biocalc"
	"github.com/harperreed/longevity/internal/formula"
	"github.com/harperreed/longevity/internal/models"
)

// Engine evaluates calculated metrics over entry logs. It holds only the
// formula compile cache; every evaluation is a pure function of its inputs,
// so one Engine is safe to share across goroutines.
type Engine struct {
	eval *formula.Evaluator
}

// New creates an Engine with a fresh formula cache.
func New() *Engine {
	return &Engine{eval: formula.NewEvaluator()}
}

// ProcessEntries replays entries in chronological order and returns enriched
// copies with calculated metric values filled in. The running context is
// forward-filled: a metric's value holds from the entry that set it until a
// later entry overwrites it. Calculated results feed back into the context
// immediately, so a formula can reference another calculated metric's value
// from the same entry. Input slices are never mutated.
//
// A formula that fails to evaluate (bad syntax, missing dependency,
// non-finite result) simply leaves that metric unset for that entry.
func (e *Engine) ProcessEntries(entries []models.LogEntry, metrics []models.MetricDefinition) []models.LogEntry {
	calculated := calculatedOrder(metrics)

	sorted := make([]models.LogEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	running := make(map[string]float64)
	out := make([]models.LogEntry, 0, len(sorted))

	for _, entry := range sorted {
		// Real observations overwrite the running context for this and all
		// subsequent entries.
		for id, v := range entry.Values {
			running[id] = v
		}

		snapshot := make(map[string]float64, len(running))
		for id, v := range running {
			snapshot[id] = v
		}

		env := e.buildEnv(snapshot, sorted, entry.Timestamp)
		newValues := entry.Values.Clone()

		for _, m := range calculated {
			val, err := e.eval.Eval(m.Formula, env)
			if err != nil {
				log.Debug().Str("metric", m.ID).Str("entry", entry.ID).Err(err).
					Msg("formula evaluation failed, leaving value unset")
				continue
			}
			newValues[m.ID] = val
			running[m.ID] = val
			snapshot[m.ID] = val // visible through env["vals"]
			env[m.ID] = val
		}

		out = append(out, models.LogEntry{
			ID:        entry.ID,
			Timestamp: entry.Timestamp,
			Values:    newValues,
		})
	}

	return out
}

// calculatedOrder selects formula-bearing metrics and orders them so that any
// id containing "age" evaluates after all others; age-derived scores depend
// on other computed scores. Ties keep registry order.
func calculatedOrder(metrics []models.MetricDefinition) []models.MetricDefinition {
	var calculated []models.MetricDefinition
	for _, m := range metrics {
		if m.IsCalculated && m.Formula != "" {
			calculated = append(calculated, m)
		}
	}
	sort.SliceStable(calculated, func(i, j int) bool {
		return !isAgeMetric(calculated[i]) && isAgeMetric(calculated[j])
	})
	return calculated
}

func isAgeMetric(m models.MetricDefinition) bool {
	return strings.Contains(m.ID, "age")
}

// buildEnv assembles the formula symbol table: the fixed helper library
// first, then the metric values so an id that collides with a helper name
// wins. "vals" exposes the same context for ids that are not valid
// identifiers, like "2k_row_time".
func (e *Engine) buildEnv(ctx map[string]float64, entries []models.LogEntry, ref time.Time) map[string]any {
	env := formula.MathFuncs()

	env["sum"] = func(metricID, period any) float64 {
		id, ok := metricID.(string)
		if !ok {
			return 0
		}
		return formula.Sum(entries, id, period, ref)
	}
	env["cvdRisk"] = func(vals map[string]float64) (float64, error) {
		return biocalc.CVDRisk(biocalc.CVDFromValues(vals))
	}
	env["phenoAge"] = func(vals map[string]float64) (float64, error) {
		return bioAgeValue(biocalc.PhenoAge(biocalc.PhenoAgeFromValues(vals)))
	}
	env["kdmBioAge"] = func(vals map[string]float64) (float64, error) {
		return bioAgeValue(biocalc.KDMBioAge(biocalc.KDMFromValues(vals)))
	}

	for id, v := range ctx {
		env[id] = v
	}
	env["vals"] = ctx

	return env
}

func bioAgeValue(res *biocalc.BioAgeResult) (float64, error) {
	if res == nil {
		return 0, errMissingAge
	}
	return res.BiologicalAge, nil
}
