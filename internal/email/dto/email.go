package dto

import (
	emaildomain "email-agent-backend/internal/email/domain"
)

type EmailListResponse struct {
	Emails         []*emaildomain.Email `json:"emails"`
	Total          int                  `json:"total"`
	ProcessedCount int                  `json:"processed_count"`
}

type LoadMockResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type SearchResponse struct {
	Emails []*emaildomain.Email `json:"emails"`
	Query  string               `json:"query"`
	Total  int                  `json:"total"`
}
