package team

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNameTaken is reported by repositories when a create or update would
// reuse another team's name.
var ErrNameTaken = errors.New("team name already taken")

// Team is a football club. League membership is optional so teams can be
// registered before their league exists.
type Team struct {
	ID          string
	Name        string
	LogoURL     string
	ManagerName string
	LeagueID    *string

	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.LeagueID != nil && *t.LeagueID == "" {
		return fmt.Errorf("team league id must not be empty when set")
	}

	return nil
}
