package audit

import (
	"fmt"
	"sort"

	"github.com/dtnitsch/shipment-dossier/models"
)

// KeywordTotals aggregates alert counts per keyword across all clients.
func KeywordTotals(groups []models.ClientAlerts) map[string]int {
	totals := make(map[string]int)
	for _, g := range groups {
		for _, a := range g.Alerts {
			totals[a.Keyword]++
		}
	}
	return totals
}

// TopKeywords returns the n most frequent keywords as "keyword:count"
// strings, counts descending, name ascending on ties.
func TopKeywords(totals map[string]int, n int) []string {
	type kv struct {
		Key   string
		Value int
	}
	var ss []kv
	for k, v := range totals {
		ss = append(ss, kv{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	if len(ss) > n {
		ss = ss[:n]
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%s:%d", s.Key, s.Value)
	}
	return out
}
