package usecase

import (
	"errors"

	"github.com/statsrecord/stats-api/internal/domain/league"
	"github.com/statsrecord/stats-api/internal/domain/playerstats"
	"github.com/statsrecord/stats-api/internal/domain/team"
	"github.com/statsrecord/stats-api/internal/domain/teamstats"
	"github.com/statsrecord/stats-api/internal/domain/user"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("conflict")
)

// isConflict reports whether a repository error is one of the domain
// uniqueness or dependency violations that map to a conflict response.
func isConflict(err error) bool {
	return errors.Is(err, user.ErrEmailTaken) ||
		errors.Is(err, team.ErrNameTaken) ||
		errors.Is(err, league.ErrNameTaken) ||
		errors.Is(err, league.ErrInUse) ||
		errors.Is(err, playerstats.ErrDuplicate) ||
		errors.Is(err, teamstats.ErrDuplicate)
}
