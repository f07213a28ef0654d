package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaskStatus represents the progress of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return TaskStatus(s), true
	}
	return "", false
}

func (s TaskStatus) String() string {
	return string(s)
}

func (s TaskStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = TaskStatus(str)
	return nil
}

func (s TaskStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *TaskStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TaskStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = TaskStatus(v)
	case []byte:
		*s = TaskStatus(string(v))
	}
	return nil
}
