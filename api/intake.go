package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/malecare/trialbot/domain"
)

// IntakeRequest is the patient intake form payload. Age is a pointer so a
// missing field can be told apart from age zero.
type IntakeRequest struct {
	UserID          string   `json:"user_id"`
	CancerType      string   `json:"cancer_type"`
	Stage           string   `json:"stage"`
	Age             *int     `json:"age"`
	Sex             string   `json:"sex"`
	Location        string   `json:"location"`
	Comorbidities   []string `json:"comorbidities,omitempty"`
	PriorTreatments []string `json:"prior_treatments,omitempty"`
}

// SubmitIntake records the patient intake and opens the conversation.
// POST /intake
func (h *Handler) SubmitIntake(c echo.Context) error {
	var req IntakeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}
	if req.CancerType == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "cancer_type is required"})
	}
	if req.Location == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "location is required"})
	}
	if req.Sex == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sex is required"})
	}
	if req.Age == nil || *req.Age < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "age must be a non-negative integer"})
	}

	response := h.svc.SubmitIntake(domain.PatientIntake{
		UserID:          req.UserID,
		CancerType:      req.CancerType,
		Stage:           req.Stage,
		Age:             *req.Age,
		Sex:             req.Sex,
		Location:        req.Location,
		Comorbidities:   req.Comorbidities,
		PriorTreatments: req.PriorTreatments,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"response":        response,
		"intake_complete": true,
	})
}
