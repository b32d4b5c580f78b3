package events

import "time"

const PayrollExportCreatedTopic = "hr.payroll.export.created.v1"

type PayrollExportCreatedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	ExportID    string    `json:"export_id"`
	CompanyID   string    `json:"company_id"`
	Provider    string    `json:"provider"`
	FileName    string    `json:"file_name"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
