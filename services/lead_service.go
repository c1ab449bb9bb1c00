package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/mail"
	"sort"
	"strings"
	"time"

	"techforge_app_go/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var ErrLeadNotFound = errors.New("lead not found")

// Field limits for lead submissions
const (
	MaxLeadNameLength         = 120
	MaxLeadEmailLength        = 254
	MaxLeadRequirementsLength = 5000
)

// LeadInput is an unvalidated contact form submission
type LeadInput struct {
	Name         string
	Email        string
	ProjectType  string
	Budget       string
	Timeline     string
	Requirements string
	Source       string
	IPAddress    string
	UserAgent    string
}

// LeadValidationError lists every rejected field with a message
type LeadValidationError struct {
	Fields map[string]string
}

func (e *LeadValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid lead: %s", strings.Join(names, ", "))
}

// First returns the message for the first invalid field in form order
func (e *LeadValidationError) First() string {
	for _, name := range []string{"name", "email", "projectType", "budget", "timeline", "requirements"} {
		if msg, ok := e.Fields[name]; ok {
			return msg
		}
	}
	return "Please check the form"
}

var leadTextPolicy = bluemonday.StrictPolicy()

// cleanLeadText drops markup but keeps plain text as typed; the policy
// escapes entities, which templates would escape again
func cleanLeadText(s string) string {
	return strings.TrimSpace(html.UnescapeString(leadTextPolicy.Sanitize(strings.TrimSpace(s))))
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// ValidateLead normalizes input and returns the lead it would create
func ValidateLead(in LeadInput) (*models.Lead, error) {
	lead := &models.Lead{
		Name:         cleanLeadText(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		ProjectType:  strings.TrimSpace(in.ProjectType),
		Budget:       strings.TrimSpace(in.Budget),
		Timeline:     strings.TrimSpace(in.Timeline),
		Requirements: cleanLeadText(in.Requirements),
		Source:       in.Source,
		IPAddress:    in.IPAddress,
		UserAgent:    in.UserAgent,
	}
	if lead.Source == "" {
		lead.Source = models.LeadSourceWeb
	}

	fields := make(map[string]string)

	switch {
	case lead.Name == "":
		fields["name"] = "Name is required"
	case len(lead.Name) > MaxLeadNameLength:
		fields["name"] = "Name is too long"
	}

	if lead.Email == "" {
		fields["email"] = "Email is required"
	} else if addr, err := mail.ParseAddress(lead.Email); err != nil || addr.Address != lead.Email || len(lead.Email) > MaxLeadEmailLength {
		fields["email"] = "Please enter a valid email address"
	}

	if lead.ProjectType == "" {
		fields["projectType"] = "Please select a project type"
	} else if !contains(models.ProjectTypes, lead.ProjectType) {
		fields["projectType"] = "Unknown project type"
	}

	if lead.Budget != "" && !contains(models.BudgetRanges, lead.Budget) {
		fields["budget"] = "Unknown budget range"
	}
	if lead.Timeline != "" && !contains(models.Timelines, lead.Timeline) {
		fields["timeline"] = "Unknown timeline"
	}

	switch {
	case lead.Requirements == "":
		fields["requirements"] = "Please describe your requirements"
	case len(lead.Requirements) > MaxLeadRequirementsLength:
		fields["requirements"] = "Requirements are too long"
	}

	if len(fields) > 0 {
		return nil, &LeadValidationError{Fields: fields}
	}
	return lead, nil
}

// LeadService stores contact form submissions
type LeadService struct {
	db *gorm.DB
}

func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{db: db}
}

// Create validates and persists a lead
func (s *LeadService) Create(ctx context.Context, in LeadInput) (*models.Lead, error) {
	lead, err := ValidateLead(in)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}
	return lead, nil
}

// MarkNotified records that the notification email went out
func (s *LeadService) MarkNotified(ctx context.Context, id string) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", id).Update("notified_at", now)
	if res.Error != nil {
		return fmt.Errorf("failed to mark lead notified: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// LeadFilter narrows lead listings
type LeadFilter struct {
	Since       time.Time
	Until       time.Time
	ProjectType string
	Limit       int
	Offset      int
}

// List returns leads, newest first, and the total matching count
func (s *LeadService) List(ctx context.Context, f LeadFilter) ([]models.Lead, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Lead{})
	if !f.Since.IsZero() {
		query = query.Where("created_at >= ?", f.Since)
	}
	if !f.Until.IsZero() {
		query = query.Where("created_at < ?", f.Until)
	}
	if f.ProjectType != "" {
		query = query.Where("project_type = ?", f.ProjectType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	if f.Limit > 0 {
		query = query.Limit(f.Limit).Offset(f.Offset)
	}

	var leads []models.Lead
	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, total, nil
}
