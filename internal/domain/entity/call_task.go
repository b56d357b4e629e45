package entity

// CallTaskLink is the association between a call and a task.
// Each link carries its own status, so one template task can be at
// different stages on different calls.
type CallTaskLink struct {
	CallID uint       `json:"call_id"`
	TaskID uint       `json:"task_id"`
	Status TaskStatus `json:"status"`
}

// CallTask is a task seen from a call, with the status of that link
type CallTask struct {
	Task
	CallID uint       `json:"call_id"`
	Status TaskStatus `json:"status"`
}

// CallTaskResponse represents a call task returned to client
type CallTaskResponse struct {
	TaskResponse
	CallID uint       `json:"call_id"`
	Status TaskStatus `json:"status"`
}

// ToResponse converts CallTask to CallTaskResponse
func (ct *CallTask) ToResponse() *CallTaskResponse {
	return &CallTaskResponse{
		TaskResponse: *ct.Task.ToResponse(),
		CallID:       ct.CallID,
		Status:       ct.Status,
	}
}
