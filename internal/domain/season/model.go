package season

import (
	"fmt"
	"strings"
	"time"
)

// Season is one edition of a league, e.g. "2025/2026".
type Season struct {
	ID        string
	LeagueID  string
	Label     string
	StartDate time.Time
	EndDate   time.Time
	IsCurrent bool

	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("season league id is required")
	}
	if strings.TrimSpace(s.Label) == "" {
		return fmt.Errorf("season label is required")
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return fmt.Errorf("season start and end dates are required")
	}
	if !s.EndDate.After(s.StartDate) {
		return fmt.Errorf("season end date must be after start date")
	}

	return nil
}
