package request

type CreateTaskRequest struct {
	MarketingRep string `json:"marketing_rep"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}
