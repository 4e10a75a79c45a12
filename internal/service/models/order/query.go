package order

import "time"

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	Ids           []int64    `json:"ids,omitempty"`
	UserIds       []int64    `json:"userIds,omitempty"`
	Status        Status     `json:"status,omitempty"`
	Scheduled     bool       `json:"scheduled,omitempty"`
	ScheduledFrom *time.Time `json:"scheduledFrom,omitempty"`
	ScheduledTo   *time.Time `json:"scheduledTo,omitempty"`
	CreatedFrom   *time.Time `json:"createdFrom,omitempty"`
	CreatedTo     *time.Time `json:"createdTo,omitempty"`
	Limit         int        `json:"limit,omitempty"`
	Offset        int        `json:"offset,omitempty"`
}
