package dto

import (
	"time"

	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/service"
)

type AlertRequest struct {
	Name              string `json:"name" binding:"required,max=75"`
	Query             string `json:"query" binding:"required,max=2500"`
	Frequency         string `json:"frequency" binding:"required,alertfreq"`
	Private           bool   `json:"private"`
	SendNegativeAlert bool   `json:"send_negative_alert"`
}

func (r AlertRequest) ToInput() service.AlertInput {
	return service.AlertInput{
		Name:              r.Name,
		Query:             r.Query,
		Frequency:         model.AlertFrequency(r.Frequency),
		Private:           r.Private,
		SendNegativeAlert: r.SendNegativeAlert,
	}
}

type AlertResponse struct {
	ID                int64      `json:"id,string"`
	Name              string     `json:"name"`
	Query             string     `json:"query"`
	Frequency         string     `json:"frequency"`
	FrequencyLabel    string     `json:"frequency_label"`
	Private           bool       `json:"private"`
	SendNegativeAlert bool       `json:"send_negative_alert"`
	LastHitDate       *time.Time `json:"last_hit_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func ToAlertResponse(a *model.Alert) AlertResponse {
	return AlertResponse{
		ID:                a.ID,
		Name:              a.Name,
		Query:             a.Query,
		Frequency:         string(a.Frequency),
		FrequencyLabel:    a.Frequency.Label(),
		Private:           a.Private,
		SendNegativeAlert: a.SendNegativeAlert,
		LastHitDate:       a.LastHitDate,
		CreatedAt:         a.CreatedAt,
	}
}

func ToAlertResponses(alerts []model.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for i := range alerts {
		out = append(out, ToAlertResponse(&alerts[i]))
	}
	return out
}
