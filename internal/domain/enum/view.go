package enum

// FabricatorView selects which fabricators an admin list returns
type FabricatorView string

const (
	FabricatorViewAll        FabricatorView = "all"
	FabricatorViewPending    FabricatorView = "pending"
	FabricatorViewApproved   FabricatorView = "approved"
	FabricatorViewRejected   FabricatorView = "rejected"
	FabricatorViewAssigned   FabricatorView = "assigned"
	FabricatorViewUnassigned FabricatorView = "unassigned"
)

func ParseFabricatorView(s string) (FabricatorView, bool) {
	switch v := FabricatorView(s); v {
	case "":
		return FabricatorViewAll, true
	case FabricatorViewAll, FabricatorViewPending, FabricatorViewApproved,
		FabricatorViewRejected, FabricatorViewAssigned, FabricatorViewUnassigned:
		return v, true
	}
	return "", false
}

// Status returns the status filter implied by the view, if any
func (v FabricatorView) Status() (FabricatorStatus, bool) {
	switch v {
	case FabricatorViewPending:
		return FabricatorStatusPending, true
	case FabricatorViewApproved:
		return FabricatorStatusApproved, true
	case FabricatorViewRejected:
		return FabricatorStatusRejected, true
	}
	return "", false
}

// AssignmentView filters distributors by whether they have a representative
type AssignmentView string

const (
	AssignmentAll        AssignmentView = "all"
	AssignmentAssigned   AssignmentView = "assigned"
	AssignmentUnassigned AssignmentView = "unassigned"
)

func ParseAssignmentView(s string) (AssignmentView, bool) {
	switch v := AssignmentView(s); v {
	case "":
		return AssignmentAll, true
	case AssignmentAll, AssignmentAssigned, AssignmentUnassigned:
		return v, true
	}
	return "", false
}

// ReportView selects the shape of a report listing or export
type ReportView string

const (
	ReportViewAll          ReportView = "all"
	ReportViewFabricators  ReportView = "fabricators"
	ReportViewDistributors ReportView = "distributors"
	ReportViewSummary      ReportView = "summary"
)

func ParseReportView(s string) (ReportView, bool) {
	switch v := ReportView(s); v {
	case "":
		return ReportViewAll, true
	case ReportViewAll, ReportViewFabricators, ReportViewDistributors, ReportViewSummary:
		return v, true
	}
	return "", false
}
