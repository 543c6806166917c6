package handlers

import (
	"net/http"

	apperrors "customer-intake-portal/internal/errors"
	"customer-intake-portal/internal/logger"
	"customer-intake-portal/internal/metrics"
	"customer-intake-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// IntakeFormTemplate is the name of the HTML template that renders FormPage
const IntakeFormTemplate = "intake_form.html"

// FormField is one input of the intake form
type FormField struct {
	Name  string
	Label string
	Type  string // text, email or textarea
}

// FormPage describes the intake form page
type FormPage struct {
	Title       string
	Action      string
	Method      string
	Fields      []FormField
	SubmitLabel string
}

// IntakeFormPage returns the intake form: four fields and one submit control
func IntakeFormPage() FormPage {
	return FormPage{
		Title:  "Customer Intake Form",
		Action: "/intake",
		Method: http.MethodPost,
		Fields: []FormField{
			{Name: "name", Label: "Customer Name", Type: "text"},
			{Name: "email", Label: "Customer Email", Type: "email"},
			{Name: "subject", Label: "Subject", Type: "text"},
			{Name: "message", Label: "Message", Type: "textarea"},
		},
		SubmitLabel: "Submit",
	}
}

// IntakeHandler serves the public intake form
type IntakeHandler struct {
	intakeService service.IntakeServiceInterface
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(intakeService service.IntakeServiceInterface) *IntakeHandler {
	return &IntakeHandler{
		intakeService: intakeService,
	}
}

// ShowForm renders the intake form
// @Summary Intake form
// @Description Render the HTML form with the name, email, subject and message fields
// @Tags intake
// @Produce html
// @Success 200 {string} string "HTML form page"
// @Router /intake [get]
func (h *IntakeHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, IntakeFormTemplate, IntakeFormPage())
}

// Submit stores an intake form submission and sends its notifications.
// Failures are logged and never change the response.
// @Summary Submit intake form
// @Description Store the submission, link it to the customer with the same email and notify the administrator and the customer's sales representative
// @Tags intake
// @Accept x-www-form-urlencoded
// @Param name formData string false "Customer name"
// @Param email formData string false "Customer email"
// @Param subject formData string false "Subject"
// @Param message formData string false "Message"
// @Success 200 "Submission accepted"
// @Router /intake [post]
func (h *IntakeHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithContext(ctx).WithField("component", "intake_handler")

	var req service.SubmitInquiryRequest
	if err := c.ShouldBind(&req); err != nil {
		log.WithError(err).Warn("Could not read the whole intake form, continuing with the fields that were read")
	}

	result, err := h.intakeService.Submit(ctx, &req)
	if err != nil {
		kind := apperrors.KindOf(err)
		metrics.RecordIntakeFailure(string(kind))

		entry := log.WithError(err).WithField("kind", kind)
		if result != nil && result.Inquiry != nil {
			entry = entry.WithField("inquiry_id", result.Inquiry.ID)
		}
		entry.Error("Intake submission failed")
	}

	c.Status(http.StatusOK)
}
