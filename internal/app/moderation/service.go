// Package moderation implements the admission application workflow: public
// submission, admin status changes, and the approval notification.
//
// The status change is the system of record; the approval email is advisory.
// Rather than calling the mailer inline, SetStatus enqueues a notification in
// the outbox alongside the status write, and a background dispatcher delivers
// it best-effort. A notifier outage therefore never fails or rolls back a
// moderation decision.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	admissionstore "github.com/ydpps/schoolcms/internal/app/store/admissions"
	"github.com/ydpps/schoolcms/internal/app/store/outbox"
	"github.com/ydpps/schoolcms/internal/app/system/txn"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// Errors returned by the service.
var (
	ErrNotFound      = errors.New("moderation: application not found")
	ErrInvalidStatus = errors.New("moderation: invalid status")
)

// ValidationError reports missing or malformed submission fields. It is
// surfaced to the submitting user; the operation is not retried.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ApplicationStore is the persistence surface the service needs.
// *admissions.Store satisfies it.
type ApplicationStore interface {
	Create(ctx context.Context, input admissionstore.CreateInput) (*models.AdmissionApplication, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AdmissionApplication, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Outbox is the notification queue the service enqueues into.
// *outbox.Store satisfies it.
type Outbox interface {
	Enqueue(ctx context.Context, input outbox.EnqueueInput) (*outbox.Notification, error)
}

// SettingsFn supplies the current site settings for email templating.
type SettingsFn func() models.SiteSettings

// Service is the admission moderation state machine.
type Service struct {
	store    ApplicationStore
	outbox   Outbox
	db       *mongo.Database // nil disables transactional enqueue (tests)
	settings SettingsFn
	logger   *zap.Logger
}

// NewService creates a moderation service. db may be nil, in which case the
// status write and the outbox enqueue are not wrapped in a transaction.
func NewService(store ApplicationStore, ob Outbox, db *mongo.Database, settings SettingsFn, logger *zap.Logger) *Service {
	if settings == nil {
		settings = models.DefaultSiteSettings
	}
	return &Service{
		store:    store,
		outbox:   ob,
		db:       db,
		settings: settings,
		logger:   logger,
	}
}

// SubmitInput is a public admission submission. Only required-field presence
// is validated; everything else is stored as given.
type SubmitInput struct {
	StudentName string `json:"studentName" validate:"required"`
	ParentName  string `json:"parentName" validate:"required"`
	Grade       string `json:"grade" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Address     string `json:"address"`
	Message     string `json:"message"`
}

var submitValidator = validator.New()

// Submit validates and records a new application. Status is always pending
// and createdAt is server time regardless of input.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*models.AdmissionApplication, error) {
	if err := submitValidator.Struct(input); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			fields := make(map[string]string, len(invalid))
			for _, fe := range invalid {
				switch fe.Tag() {
				case "required":
					fields[fe.Field()] = "required"
				case "email":
					fields[fe.Field()] = "invalid email format"
				default:
					fields[fe.Field()] = "invalid"
				}
			}
			return nil, &ValidationError{Fields: fields}
		}
		return nil, err
	}

	app, err := s.store.Create(ctx, admissionstore.CreateInput{
		StudentName: strings.TrimSpace(input.StudentName),
		ParentName:  strings.TrimSpace(input.ParentName),
		Grade:       strings.TrimSpace(input.Grade),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Address:     strings.TrimSpace(input.Address),
		Message:     strings.TrimSpace(input.Message),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("admission application submitted",
		zap.String("id", app.ID.Hex()),
		zap.String("grade", app.Grade))
	return app, nil
}

// SetStatus overwrites the application's status. Any status may replace any
// other; there is no transition guard, and concurrent admins resolve
// last-write-wins. Approving enqueues the approval email in the same
// transaction as the status write.
func (s *Service) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error {
	if !models.IsValidApplicationStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	app, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	err = s.run(ctx, func(ctx context.Context) error {
		if err := s.store.SetStatus(ctx, id, status); err != nil {
			return err
		}
		if status == models.StatusApproved && app.Email != "" {
			email := approvalEmail(s.settings(), app)
			if _, err := s.outbox.Enqueue(ctx, outbox.EnqueueInput{
				To:            app.Email,
				Subject:       email.Subject,
				HTMLBody:      email.HTMLBody,
				TextBody:      email.TextBody,
				ApplicationID: id,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("application status updated",
		zap.String("id", id.Hex()),
		zap.String("status", string(status)))
	return nil
}

// Delete hard-deletes an application, allowed at any status.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return txn.Run(ctx, s.db, s.logger, fn)
}
