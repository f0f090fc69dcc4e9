package service

import (
	"fmt"
	"log/slog"

	"github.com/helixml/chickenrescue/domain/boss"
)

// Boss judges shoot/retaliate exchanges.
type Boss struct {
	logger *slog.Logger
}

// NewBoss creates a Boss service.
func NewBoss(logger *slog.Logger) *Boss {
	if logger == nil {
		logger = slog.Default()
	}
	return &Boss{logger: logger}
}

// Judge parses an exchange such as "SRSSRRR" and returns the verdict.
func (b *Boss) Judge(actions string) (boss.Verdict, error) {
	parsed, err := boss.ParseActions(actions)
	if err != nil {
		return 0, fmt.Errorf("parse actions: %w", err)
	}

	verdict := boss.Check(parsed)
	bossVerdicts.WithLabelValues(verdict.String()).Inc()

	b.logger.Debug("boss behaviour checked",
		slog.Int("actions", parsed.Len()),
		slog.String("verdict", verdict.String()),
	)
	return verdict, nil
}
