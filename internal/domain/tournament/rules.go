package tournament

import "errors"

var (
	ErrTeamExists      = errors.New("team already exists")
	ErrTeamNotFound    = errors.New("team not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrDuplicateMatch  = errors.New("match between these teams already exists")
	ErrCrossGroupMatch = errors.New("teams are not in the same group")
	ErrSelfMatch       = errors.New("team cannot play against itself")
	ErrNegativeGoals   = errors.New("goals must be >= 0")
)

// Rules stores group-stage scoring and qualification parameters.
type Rules struct {
	WinPoints           int
	DrawPoints          int
	LossPoints          int
	AlternateWinPoints  int
	AlternateDrawPoints int
	AlternateLossPoints int
	QualifiersPerGroup  int
}

func DefaultRules() Rules {
	return Rules{
		WinPoints:           3,
		DrawPoints:          1,
		LossPoints:          0,
		AlternateWinPoints:  5,
		AlternateDrawPoints: 3,
		AlternateLossPoints: 1,
		QualifiersPerGroup:  4,
	}
}
