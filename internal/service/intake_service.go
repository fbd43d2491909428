package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"floral-studio/internal/domain"
	"floral-studio/internal/metrics"
	"floral-studio/internal/repository"
	"floral-studio/internal/response"
)

// SavedFormsKey is the preference key holding the intake form list
const SavedFormsKey = "SavedForms"

// IntakeService defines the interface for intake form handling
type IntakeService interface {
	Validate(form *domain.IntakeForm) error
	Submit(ctx context.Context, form *domain.IntakeForm) (*domain.IntakeForm, error)
	List(ctx context.Context) ([]domain.IntakeForm, error)
	Update(ctx context.Context, form *domain.IntakeForm) (*domain.IntakeForm, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// intakeServiceImpl is the implementation of IntakeService
type intakeServiceImpl struct {
	prefs   repository.PreferenceStore
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time

	// mu serializes read-modify-write cycles of the stored list
	mu sync.Mutex
}

// NewIntakeService creates a new instance of IntakeService
func NewIntakeService(prefs repository.PreferenceStore, m *metrics.Metrics, logger *zap.Logger) IntakeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &intakeServiceImpl{
		prefs:   prefs,
		metrics: m,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Validate checks required fields, then the email address, then the phone number
func (s *intakeServiceImpl) Validate(form *domain.IntakeForm) error {
	required := []struct {
		value, field, message string
	}{
		{form.FullName, "fullName", "Full name is required"},
		{form.EventName, "eventName", "Event name is required"},
		{form.EmailAddress, "emailAddress", "Email address is required"},
		{form.EventLocation.Name, "eventLocation", "Event location is required"},
	}
	for _, r := range required {
		if err := requireField(r.value, r.field, r.message); err != nil {
			return err
		}
	}

	if !isValidEmail(strings.TrimSpace(form.EmailAddress)) {
		return response.NewValidationError("Email address is invalid", "emailAddress")
	}

	if form.PhoneNumber != "" {
		if _, ok := normalizePhone(form.PhoneNumber); !ok {
			return response.NewValidationError("Phone number must have 10 digits", "phoneNumber")
		}
	}
	return nil
}

// normalize trims the email and reduces the phone number to its digits
func (s *intakeServiceImpl) normalize(form *domain.IntakeForm) {
	form.EmailAddress = strings.TrimSpace(form.EmailAddress)
	if form.PhoneNumber != "" {
		form.PhoneNumber, _ = normalizePhone(form.PhoneNumber)
	}
}

// Submit validates the form and appends it to the stored list
func (s *intakeServiceImpl) Submit(ctx context.Context, form *domain.IntakeForm) (*domain.IntakeForm, error) {
	if err := s.Validate(form); err != nil {
		return nil, err
	}

	submitted := *form
	s.normalize(&submitted)
	if submitted.ID == uuid.Nil {
		submitted.ID = uuid.New()
	}
	now := s.now()
	submitted.CreatedAt = now
	submitted.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()

	forms, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	forms = append(forms, submitted)
	if err := s.store(ctx, forms); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementIntakeFormSubmitted()
	}
	s.logger.Info("Intake form submitted", zap.String("form_id", submitted.ID.String()))
	return &submitted, nil
}

// List returns every stored form in submission order
func (s *intakeServiceImpl) List(ctx context.Context) ([]domain.IntakeForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Update replaces a stored form, keeping its creation time
func (s *intakeServiceImpl) Update(ctx context.Context, form *domain.IntakeForm) (*domain.IntakeForm, error) {
	if err := s.Validate(form); err != nil {
		return nil, err
	}

	updated := *form
	s.normalize(&updated)

	s.mu.Lock()
	defer s.mu.Unlock()

	forms, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOfForm(forms, updated.ID)
	if idx < 0 {
		return nil, response.NewNotFoundError("Intake form not found", updated.ID.String())
	}
	updated.CreatedAt = forms[idx].CreatedAt
	updated.UpdatedAt = s.now()
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		updated.UpdatedAt = updated.CreatedAt
	}
	forms[idx] = updated

	if err := s.store(ctx, forms); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a stored form
func (s *intakeServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	forms, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOfForm(forms, id)
	if idx < 0 {
		return response.NewNotFoundError("Intake form not found", id.String())
	}
	forms = append(forms[:idx], forms[idx+1:]...)
	return s.store(ctx, forms)
}

func indexOfForm(forms []domain.IntakeForm, id uuid.UUID) int {
	for i := range forms {
		if forms[i].ID == id {
			return i
		}
	}
	return -1
}

// load reads the stored list; a missing key is an empty list
func (s *intakeServiceImpl) load(ctx context.Context) ([]domain.IntakeForm, error) {
	raw, err := s.prefs.Get(ctx, SavedFormsKey)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return []domain.IntakeForm{}, nil
		}
		s.logger.Error("Failed to read intake forms", zap.Error(err))
		return nil, response.NewStorageError("Failed to load intake forms", err)
	}

	var forms []domain.IntakeForm
	if err := json.Unmarshal(raw, &forms); err != nil {
		s.logger.Error("Stored intake forms are not valid JSON", zap.Error(err))
		return nil, response.NewStorageError("Failed to decode intake forms", err)
	}
	if forms == nil {
		forms = []domain.IntakeForm{}
	}
	return forms, nil
}

func (s *intakeServiceImpl) store(ctx context.Context, forms []domain.IntakeForm) error {
	raw, err := json.Marshal(forms)
	if err != nil {
		return response.NewStorageError("Failed to encode intake forms", err)
	}
	if err := s.prefs.Set(ctx, SavedFormsKey, raw); err != nil {
		s.logger.Error("Failed to write intake forms", zap.Error(err))
		return response.NewStorageError("Failed to save intake forms", err)
	}
	return nil
}
