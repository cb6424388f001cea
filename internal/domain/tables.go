package domain

// SourceNames maps lowercase article domains to display names for the
// outlets we recognize; unknown domains fall back to a derived name.
var SourceNames = map[string]string{
	"nytimes.com":        "New York Times",
	"washingtonpost.com": "Washington Post",
	"techcrunch.com":     "TechCrunch",
	"axios.com":          "Axios",
	"nypost.com":         "New York Post",
	"cnn.com":            "CNN",
	"foxnews.com":        "Fox News",
	"reuters.com":        "Reuters",
	"ap.org":             "Associated Press",
}

// NarrativeCluster pairs a cluster label with its keyword list.
type NarrativeCluster struct {
	Name     string
	Keywords []string
}

// NarrativeClusters enumerates the known narrative patterns. Order
// matters: ties between clusters resolve to the earliest entry.
var NarrativeClusters = []NarrativeCluster{
	{Name: "privacy_alarmist", Keywords: []string{"dangerous", "threat", "stalkers", "invasive", "concerning"}},
	{Name: "technical_explainer", Keywords: []string{"how to", "guide", "protect", "control", "settings"}},
	{Name: "regulatory_response", Keywords: []string{"lawmakers", "policy", "regulation", "government", "official"}},
	{Name: "corporate_defense", Keywords: []string{"clarification", "misunderstanding", "actually", "reality", "explained"}},
}
