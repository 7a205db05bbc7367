package validation

import (
	"strings"

	"utmequiz/internal/catalog"
)

type ClusterStatus struct {
	Name     string   `json:"name"`
	Required []string `json:"required"`
	Ready    bool     `json:"ready"`
	Missing  []string `json:"missing"`
}

// ValidSubjects returns the lower-cased subjects of every valid file.
func ValidSubjects(results []FileResult) map[string]struct{} {
	out := make(map[string]struct{}, len(results))
	for _, res := range results {
		if !res.Valid || res.Subject == "" {
			continue
		}
		out[strings.ToLower(res.Subject)] = struct{}{}
	}
	return out
}

// CheckClusters reports, per cluster, whether every required subject has a
// valid file. Missing subjects keep the cluster's declared order.
func CheckClusters(results []FileResult, clusters []catalog.Cluster) []ClusterStatus {
	have := ValidSubjects(results)
	out := make([]ClusterStatus, 0, len(clusters))
	for _, c := range clusters {
		st := ClusterStatus{
			Name:     c.Name,
			Required: append([]string(nil), c.Required...),
			Missing:  []string{},
		}
		for _, subject := range c.Required {
			if _, ok := have[subject]; !ok {
				st.Missing = append(st.Missing, subject)
			}
		}
		st.Ready = len(st.Missing) == 0
		out = append(out, st)
	}
	return out
}
