package store

import (
	"sort"

	"github.com/samber/lo"
)

// PurposeUsage aggregates LLM calls for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// UsageByPurpose groups events by purpose, busiest first.
func UsageByPurpose(events []LLMEvent) []PurposeUsage {
	groups := lo.GroupBy(events, func(e LLMEvent) string { return e.Purpose })
	out := make([]PurposeUsage, 0, len(groups))
	for purpose, evs := range groups {
		u := PurposeUsage{Purpose: purpose, Calls: len(evs)}
		var latency int64
		for _, e := range evs {
			u.InputTokens += e.InputTokens
			u.OutputTokens += e.OutputTokens
			latency += e.LatencyMs
			if !e.Success {
				u.Failures++
			}
		}
		u.AvgLatencyMs = latency / int64(len(evs))
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Calls != out[j].Calls {
			return out[i].Calls > out[j].Calls
		}
		return out[i].Purpose < out[j].Purpose
	})
	return out
}

// UsageByModel groups events by model, busiest first.
func UsageByModel(events []LLMEvent) []ModelUsage {
	groups := lo.GroupBy(events, func(e LLMEvent) string { return e.Model })
	out := lo.MapToSlice(groups, func(model string, evs []LLMEvent) ModelUsage {
		return ModelUsage{
			Model:        model,
			Calls:        len(evs),
			InputTokens:  lo.SumBy(evs, func(e LLMEvent) int { return e.InputTokens }),
			OutputTokens: lo.SumBy(evs, func(e LLMEvent) int { return e.OutputTokens }),
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Calls != out[j].Calls {
			return out[i].Calls > out[j].Calls
		}
		return out[i].Model < out[j].Model
	})
	return out
}
