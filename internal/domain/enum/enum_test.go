package enum

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFabricatorStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		st, ok := ParseFabricatorStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, s, st.String())
	}
	for _, s := range []string{"", "Approved", "archived", " pending"} {
		_, ok := ParseFabricatorStatus(s)
		assert.False(t, ok, s)
	}
}

func TestParseTaskStatus(t *testing.T) {
	_, ok := ParseTaskStatus("in_progress")
	assert.True(t, ok)
	_, ok = ParseTaskStatus("done")
	assert.False(t, ok)
}

func TestParseViews(t *testing.T) {
	v, ok := ParseFabricatorView("")
	assert.True(t, ok)
	assert.Equal(t, FabricatorViewAll, v)

	st, ok := FabricatorViewApproved.Status()
	assert.True(t, ok)
	assert.Equal(t, FabricatorStatusApproved, st)
	_, ok = FabricatorViewAssigned.Status()
	assert.False(t, ok)

	rv, ok := ParseReportView("summary")
	assert.True(t, ok)
	assert.Equal(t, ReportViewSummary, rv)
	_, ok = ParseReportView("history")
	assert.False(t, ok)
}

func TestActionSet_Resolve(t *testing.T) {
	a, ok := FabricatorAdminActions.Resolve(http.MethodPatch, "assign")
	assert.True(t, ok)
	assert.Equal(t, ActionAssign, a)

	_, ok = FabricatorAdminActions.Resolve(http.MethodPatch, "delete")
	assert.False(t, ok)
	_, ok = FabricatorAdminActions.Resolve(http.MethodGet, "status")
	assert.False(t, ok)

	assert.Len(t, MarketingRepActions.Pairs(), 6)
}
