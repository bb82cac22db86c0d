package site

import (
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
)

// Site is a casino test site transactions are attributed to.
type Site struct {
	ID        string
	Name      string
	URL       *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateSiteRequest struct {
	Name string  `json:"name"`
	URL  *string `json:"url,omitempty"`
}

func (r *CreateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SiteResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	URL      *string `json:"url,omitempty"`
	IsActive bool    `json:"is_active"`
}
