package models

// FilterConfig is the filtering policy of a single run.
// When SetCodes is non-empty the run is in allow-list mode and the other
// three rules are not applied.
type FilterConfig struct {
	IgnoredSets    []string `json:"ignoredSets"`
	SetTypes       []string `json:"setTypes"`
	MinimumSetSize int      `json:"minimumSetSize"`
	SetCodes       []string `json:"setCodes"`
}

// AllowListMode reports whether explicit set codes were requested
func (c FilterConfig) AllowListMode() bool {
	return len(c.SetCodes) > 0
}

// FilterResult holds the sets selected for a run
type FilterResult struct {
	Sets         []SetRecord `json:"sets"`
	UnknownCodes []string    `json:"unknownCodes,omitempty"` // Requested codes missing from the catalog
}
