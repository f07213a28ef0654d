package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// FabricatorStatus represents the approval state of a fabricator. Any state
// may move to any other.
type FabricatorStatus string

const (
	FabricatorStatusPending  FabricatorStatus = "pending"
	FabricatorStatusApproved FabricatorStatus = "approved"
	FabricatorStatusRejected FabricatorStatus = "rejected"
)

var fabricatorStatuses = []FabricatorStatus{
	FabricatorStatusPending,
	FabricatorStatusApproved,
	FabricatorStatusRejected,
}

// FabricatorStatuses lists every valid status in display order
func FabricatorStatuses() []FabricatorStatus {
	out := make([]FabricatorStatus, len(fabricatorStatuses))
	copy(out, fabricatorStatuses)
	return out
}

// ParseFabricatorStatus returns false for anything outside the enum
func ParseFabricatorStatus(s string) (FabricatorStatus, bool) {
	for _, st := range fabricatorStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s FabricatorStatus) String() string {
	return string(s)
}

func (s FabricatorStatus) IsValid() bool {
	_, ok := ParseFabricatorStatus(string(s))
	return ok
}

func (s FabricatorStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *FabricatorStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = FabricatorStatus(str)
	return nil
}

func (s FabricatorStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *FabricatorStatus) Scan(value interface{}) error {
	if value == nil {
		*s = FabricatorStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = FabricatorStatus(v)
	case []byte:
		*s = FabricatorStatus(string(v))
	}
	return nil
}
