package dice

import "go.uber.org/zap"

// Roller rolls expressions against a session's Source and records each roll
// at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// RollExpr parses and rolls expr.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		r.logger.Debug("dice expression rejected", zap.String("expression", expr), zap.Error(err))
		return RollResult{}, err
	}
	res := Roll(e, r.src)
	r.logger.Debug("dice roll", zap.Stringer("roll", res), zap.Int("total", res.Total()))
	return res, nil
}
