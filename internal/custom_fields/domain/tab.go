package domain

// Tab names a UI grouping of contact attributes.
type Tab string

const (
	TabBasic      Tab = "basic"
	TabCommercial Tab = "commercial"
	TabUTM        Tab = "utm"
	TabDocs       Tab = "docs"
)

var KnownTabs = []Tab{TabBasic, TabCommercial, TabUTM, TabDocs}

func (t Tab) IsKnown() bool {
	for _, known := range KnownTabs {
		if t == known {
			return true
		}
	}
	return false
}

// Visibility is persisted as-is; a tab missing from Tabs means visible.
type Visibility struct {
	ShownInSummary bool         `json:"shown_in_summary" msgpack:"shown_in_summary"`
	Tabs           map[Tab]bool `json:"tabs" msgpack:"tabs"`
}

func DefaultVisibility() Visibility {
	return Visibility{Tabs: map[Tab]bool{}}
}

func (v Visibility) Clone() Visibility {
	tabs := make(map[Tab]bool, len(v.Tabs))
	for tab, visible := range v.Tabs {
		tabs[tab] = visible
	}
	return Visibility{ShownInSummary: v.ShownInSummary, Tabs: tabs}
}
