package sitesift

import "strings"

// synonyms maps lowercase query terms to closely related terms appended
// during expansion. The table is deliberately small and static so that
// expansion stays deterministic and cheap.
var synonyms = map[string][]string{
	"ai":       {"artificial intelligence", "machine intelligence"},
	"ml":       {"machine learning"},
	"api":      {"endpoint", "interface"},
	"app":      {"application"},
	"auth":     {"authentication", "login"},
	"buy":      {"purchase", "order"},
	"config":   {"configuration", "settings"},
	"cost":     {"price", "pricing"},
	"db":       {"database"},
	"delete":   {"remove"},
	"doc":      {"documentation"},
	"docs":     {"documentation"},
	"error":    {"failure", "fault"},
	"fast":     {"quick", "performance"},
	"fix":      {"repair", "resolve"},
	"help":     {"support", "assistance"},
	"install":  {"setup", "installation"},
	"intro":    {"introduction", "overview"},
	"price":    {"cost", "pricing"},
	"search":   {"find", "lookup"},
	"secure":   {"security", "safety"},
	"speed":    {"performance", "latency"},
	"start":    {"begin", "getting started"},
	"tutorial": {"guide", "walkthrough"},
	"upgrade":  {"update", "migration"},
}

// ExpandQuery augments a query with closely related terms before embedding,
// to recover matches that use synonyms rather than the exact query words.
// Expansion is monotonic: the original query is always retained verbatim and
// only new candidate terms are appended. The result is used solely to bias
// the query embedding, never for keyword filtering.
func ExpandQuery(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return query
	}

	present := make(map[string]bool, len(fields))
	for _, f := range fields {
		present[strings.ToLower(f)] = true
	}

	var extra []string
	for _, f := range fields {
		for _, syn := range synonyms[strings.ToLower(f)] {
			if present[syn] {
				continue
			}
			present[syn] = true
			extra = append(extra, syn)
		}
	}

	if len(extra) == 0 {
		return query
	}
	return query + " " + strings.Join(extra, " ")
}
