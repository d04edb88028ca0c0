package inventory

import (
	"strings"
	"time"

	"github.com/erp/skucatalog/internal/domain/shared"
)

const (
	maxBranchNameLength     = 200
	maxBranchLocationLength = 200
)

// ContactDetails holds optional contact information for a branch
type ContactDetails struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Branch represents a named storage/fulfillment location
type Branch struct {
	shared.BaseEntity
	Name           string         `json:"name"`
	Location       string         `json:"location"`
	ContactDetails ContactDetails `json:"contactDetails"`
}

// BranchInput carries the fields needed to create a branch
type BranchInput struct {
	Name           string
	Location       string
	ContactDetails ContactDetails
}

// ContactDetailsPatch replaces only the contact fields that are non-nil
type ContactDetailsPatch struct {
	Phone   *string
	Email   *string
	Address *string
}

// BranchPatch is a partial update; nil fields keep their prior value
type BranchPatch struct {
	Name           *string
	Location       *string
	ContactDetails *ContactDetailsPatch
}

// Validate checks that name and location are present
func (in BranchInput) Validate() error {
	if err := validateBranchName(strings.TrimSpace(in.Name)); err != nil {
		return err
	}
	return validateBranchLocation(strings.TrimSpace(in.Location))
}

// NewBranch creates a new branch
func NewBranch(id string, input BranchInput, now time.Time) (*Branch, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return &Branch{
		BaseEntity:     shared.NewBaseEntity(id, now),
		Name:           strings.TrimSpace(input.Name),
		Location:       strings.TrimSpace(input.Location),
		ContactDetails: input.ContactDetails,
	}, nil
}

// Apply merges the patch into the branch.
// All fields are validated before any is written, so a failed patch leaves the
// branch untouched.
func (b *Branch) Apply(patch BranchPatch, now time.Time) error {
	name := b.Name
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if err := validateBranchName(name); err != nil {
			return err
		}
	}
	location := b.Location
	if patch.Location != nil {
		location = strings.TrimSpace(*patch.Location)
		if err := validateBranchLocation(location); err != nil {
			return err
		}
	}

	contact := b.ContactDetails
	if cd := patch.ContactDetails; cd != nil {
		if cd.Phone != nil {
			contact.Phone = *cd.Phone
		}
		if cd.Email != nil {
			contact.Email = *cd.Email
		}
		if cd.Address != nil {
			contact.Address = *cd.Address
		}
	}

	b.Name = name
	b.Location = location
	b.ContactDetails = contact
	b.Touch(now)
	return nil
}

// Validate checks the invariants of an already-built branch (used on import)
func (b *Branch) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return shared.NewValidationError("Branch id cannot be empty")
	}
	if err := validateBranchName(b.Name); err != nil {
		return err
	}
	return validateBranchLocation(b.Location)
}

func validateBranchName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("Branch name cannot be empty")
	}
	if len(name) > maxBranchNameLength {
		return shared.NewValidationError("Branch name cannot exceed %d characters", maxBranchNameLength)
	}
	return nil
}

func validateBranchLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return shared.NewValidationError("Branch location cannot be empty")
	}
	if len(location) > maxBranchLocationLength {
		return shared.NewValidationError("Branch location cannot exceed %d characters", maxBranchLocationLength)
	}
	return nil
}
