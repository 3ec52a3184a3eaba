package league

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNameTaken is reported by repositories when a create or update
	// would reuse another league's name.
	ErrNameTaken = errors.New("league name already taken")
	// ErrInUse is reported when a delete is blocked by dependent records.
	ErrInUse = errors.New("league is referenced by other records")
)

// League is a football competition that teams belong to.
type League struct {
	ID          string
	Name        string
	Country     string
	FoundedYear int
	LogoURL     string

	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if strings.TrimSpace(l.Country) == "" {
		return fmt.Errorf("league country is required")
	}
	if l.FoundedYear < 0 {
		return fmt.Errorf("league founded year must not be negative")
	}

	return nil
}
