package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"customer-intake-portal/internal/database/models"
	apperrors "customer-intake-portal/internal/errors"
	"customer-intake-portal/internal/logger"
	"customer-intake-portal/internal/metrics"
	"customer-intake-portal/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Workflow steps, reported in IntakeError.Step
const (
	StepFindCustomer   = "find_customer"
	StepCreateInquiry  = "create_inquiry"
	StepNotifyAdmin    = "notify_admin"
	StepLookupSalesRep = "lookup_sales_rep"
	StepNotifySalesRep = "notify_sales_rep"
)

// BlankPlaceholder is stored in place of blank form values
const BlankPlaceholder = " "

// SubjectPrefix starts the subject line of every intake notification
const SubjectPrefix = "New Record Entered : "

var notificationBody = template.Must(template.New("notification").Parse(`Dear {{.Recipient}},

A new entry has been created.

Subject: {{.Subject}}
Message: {{.Message}}

Best regards,
{{.Signature}}
`))

// IntakeConfig holds the fixed addresses used by the intake workflow
type IntakeConfig struct {
	AdminName      string `validate:"required"`
	AdminEmail     string `validate:"required,email"`
	SenderIdentity string `validate:"required"`
}

// SubmitInquiryRequest carries the intake form fields. All of them are optional.
type SubmitInquiryRequest struct {
	Name    string `form:"name" json:"name" example:"Jane Doe"`
	Email   string `form:"email" json:"email" example:"jane@x.com"`
	Subject string `form:"subject" json:"subject" example:"Pricing"`
	Message string `form:"message" json:"message" example:"Need a quote"`
}

// SubmissionResult describes what a submission did
type SubmissionResult struct {
	Inquiry           *models.Inquiry
	MatchedCustomerID *uuid.UUID
	AdminNotified     bool
	SalesRepNotified  bool
	SalesRepEmail     string
}

// salesRep is the contact resolved for a matched customer
type salesRep struct {
	Name  string
	Email string
}

// IntakeService runs the intake workflow
type IntakeService struct {
	customerRepo repository.CustomerRepositoryInterface
	inquiryRepo  repository.InquiryRepositoryInterface
	employees    EmployeeDirectory
	notifier     Notifier
	validator    *validator.Validate
	cfg          IntakeConfig
}

// NewIntakeService creates a new intake service. The admin and sender addresses are checked
// here because every submission depends on them.
func NewIntakeService(
	customerRepo repository.CustomerRepositoryInterface,
	inquiryRepo repository.InquiryRepositoryInterface,
	employees EmployeeDirectory,
	notifier Notifier,
	validator *validator.Validate,
	cfg IntakeConfig,
) (*IntakeService, error) {
	if err := validator.Struct(cfg); err != nil {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("invalid intake configuration: %v", err))
	}
	return &IntakeService{
		customerRepo: customerRepo,
		inquiryRepo:  inquiryRepo,
		employees:    employees,
		notifier:     notifier,
		validator:    validator,
		cfg:          cfg,
	}, nil
}

// NormalizeField replaces a blank value with a single space.
// The inquiry store rejects empty text, so blank input is kept as " ".
func NormalizeField(value string) string {
	if strings.TrimSpace(value) == "" {
		return BlankPlaceholder
	}
	return value
}

// Normalized returns a copy of the request with every blank field replaced by a single space
func (r SubmitInquiryRequest) Normalized() SubmitInquiryRequest {
	return SubmitInquiryRequest{
		Name:    NormalizeField(r.Name),
		Email:   NormalizeField(r.Email),
		Subject: NormalizeField(r.Subject),
		Message: NormalizeField(r.Message),
	}
}

// Submit stores one intake form submission and sends its notifications.
// The admin is always notified once the inquiry is stored; the matched customer's
// sales representative is notified only when they have an email address.
// Processing stops at the first failing step and the returned result reports what was done.
func (s *IntakeService) Submit(ctx context.Context, req *SubmitInquiryRequest) (*SubmissionResult, error) {
	if req == nil {
		req = &SubmitInquiryRequest{}
	}
	input := req.Normalized()
	log := logger.WithContext(ctx).WithField("component", "intake")
	result := &SubmissionResult{}

	customerID, err := s.findCustomer(input.Email)
	if err != nil {
		return result, err
	}
	result.MatchedCustomerID = customerID
	metrics.RecordCustomerMatch(customerID != nil)

	inquiry, err := s.createInquiry(input, customerID)
	if err != nil {
		return result, err
	}
	result.Inquiry = inquiry
	log = log.WithField("inquiry_id", inquiry.ID)
	log.Info("Inquiry created")

	if err := s.notify(ctx, metrics.RecipientAdmin, StepNotifyAdmin, s.cfg.AdminEmail, s.cfg.AdminName, input); err != nil {
		return result, err
	}
	result.AdminNotified = true

	if customerID == nil {
		log.Debug("No matching customer, skipping sales representative notification")
		return result, nil
	}

	rep, err := s.lookupSalesRep(ctx, *customerID)
	if err != nil {
		return result, err
	}
	if rep == nil {
		log.WithField("customer_id", *customerID).Debug("Customer has no sales representative")
		return result, nil
	}
	if rep.Email == "" {
		log.WithField("customer_id", *customerID).Debug("Sales representative has no email address")
		return result, nil
	}

	if err := s.notify(ctx, metrics.RecipientSalesRep, StepNotifySalesRep, rep.Email, rep.Name, input); err != nil {
		return result, err
	}
	result.SalesRepNotified = true
	result.SalesRepEmail = rep.Email

	return result, nil
}

// findCustomer returns the first customer whose email equals email, in the store's default order.
// A blank email cannot belong to a customer, so no lookup is made for it.
func (s *IntakeService) findCustomer(email string) (*uuid.UUID, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	ids, err := s.customerRepo.FindIDsByEmail(email)
	if err != nil {
		return nil, apperrors.NewLookupFailure(StepFindCustomer, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	first := ids[0]
	return &first, nil
}

func (s *IntakeService) createInquiry(input SubmitInquiryRequest, customerID *uuid.UUID) (*models.Inquiry, error) {
	inquiry := &models.Inquiry{
		CustomerName:         input.Name,
		CustomerEmail:        input.Email,
		ReferencedCustomerID: customerID,
		Subject:              input.Subject,
		Message:              input.Message,
	}
	if err := s.validator.Struct(inquiry); err != nil {
		return nil, apperrors.NewPersistenceFailure(StepCreateInquiry, apperrors.NewValidationError("inquiry", err.Error()))
	}
	if err := s.inquiryRepo.Create(inquiry); err != nil {
		return nil, apperrors.NewPersistenceFailure(StepCreateInquiry, err)
	}
	metrics.RecordInquiryCreated()
	return inquiry, nil
}

// lookupSalesRep resolves the name and email of the customer's sales representative.
// It returns nil when the customer has none assigned.
func (s *IntakeService) lookupSalesRep(ctx context.Context, customerID uuid.UUID) (*salesRep, error) {
	fields, err := s.customerRepo.LookupFields(customerID, []string{"sales_rep_id"})
	if err != nil {
		return nil, apperrors.NewLookupFailure(StepLookupSalesRep, err)
	}
	repID, err := repository.FieldUUID(fields, "sales_rep_id")
	if err != nil {
		return nil, apperrors.NewLookupFailure(StepLookupSalesRep, err)
	}
	if repID == nil {
		return nil, nil
	}

	repFields, err := s.employees.LookupFields(ctx, *repID, []string{"name", "email"})
	if err != nil {
		return nil, apperrors.NewLookupFailure(StepLookupSalesRep, err)
	}
	return &salesRep{
		Name:  repository.FieldString(repFields, "name"),
		Email: strings.TrimSpace(repository.FieldString(repFields, "email")),
	}, nil
}

func (s *IntakeService) notify(ctx context.Context, recipient, step, to, toName string, input SubmitInquiryRequest) error {
	body, err := renderNotificationBody(toName, s.cfg.AdminName, input)
	if err != nil {
		metrics.RecordNotification(recipient, err)
		return apperrors.NewNotificationFailure(step, err)
	}

	err = s.notifier.Send(ctx, Message{
		From:    s.cfg.SenderIdentity,
		To:      []string{to},
		Subject: NotificationSubject(input.Subject),
		Body:    body,
	})
	metrics.RecordNotification(recipient, err)
	if err != nil {
		return apperrors.NewNotificationFailure(step, err)
	}
	return nil
}

// NotificationSubject builds the subject line for an intake notification
func NotificationSubject(subject string) string {
	return SubjectPrefix + subject
}

func renderNotificationBody(recipient, signature string, input SubmitInquiryRequest) (string, error) {
	var buf bytes.Buffer
	err := notificationBody.Execute(&buf, map[string]string{
		"Recipient": recipient,
		"Subject":   input.Subject,
		"Message":   input.Message,
		"Signature": signature,
	})
	if err != nil {
		return "", fmt.Errorf("render notification body: %w", err)
	}
	return buf.String(), nil
}
