package models

// Requests for the analysis HTTP endpoints. Defined in domain for consistency and reuse.

type ClassificationRequest struct {
	Indicator string `query:"indicator" json:"indicator" validate:"required"`
}

type RunRequest struct {
	RequestedBy string `query:"requested_by" json:"requested_by" default:"api"`
}
