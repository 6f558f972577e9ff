// Package seed replaces the contents of agentes and casos with a fixed
// dataset. It is destructive and meant for development, test and demo
// databases only.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Harshitk-cp/casebook/internal/database"
	"github.com/Harshitk-cp/casebook/internal/domain"
	"github.com/Harshitk-cp/casebook/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	PhaseDeleteCases        = "delete-cases"
	PhaseDeleteAgents       = "delete-agents"
	PhaseResetAgentSequence = "reset-agent-sequence"
	PhaseResetCaseSequence  = "reset-case-sequence"
	PhaseInsertAgents       = "insert-agents"
	PhaseInsertCases        = "insert-cases"

	// phaseTransaction labels failures to begin or commit.
	phaseTransaction = "transaction"
)

var ErrUnexpectedAgentID = errors.New("agent id does not match its position after sequence reset")

// StepError reports the phase that failed. Completed lists the phases that
// ran before it; the transaction has been rolled back, so none of their
// effects persist.
type StepError struct {
	Phase     string
	Completed []string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("seed phase %s: %v", e.Phase, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result summarises a successful run.
type Result struct {
	RunID          uuid.UUID
	Profile        string
	CasesDeleted   int64
	AgentsDeleted  int64
	AgentsInserted int
	CasesInserted  int
	Duration       time.Duration
}

type phase struct {
	name string
	run  func(ctx context.Context, s *session) error
}

// Cases go before agents on delete and after them on insert; the foreign key
// from casos.agente_id leaves no other order.
var phases = []phase{
	{PhaseDeleteCases, func(ctx context.Context, s *session) error {
		n, err := s.cases.DeleteAll(ctx)
		s.result.CasesDeleted = n
		return err
	}},
	{PhaseDeleteAgents, func(ctx context.Context, s *session) error {
		n, err := s.agents.DeleteAll(ctx)
		s.result.AgentsDeleted = n
		return err
	}},
	{PhaseResetAgentSequence, func(ctx context.Context, s *session) error {
		return s.agents.ResetSequence(ctx)
	}},
	{PhaseResetCaseSequence, func(ctx context.Context, s *session) error {
		return s.cases.ResetSequence(ctx)
	}},
	{PhaseInsertAgents, func(ctx context.Context, s *session) error {
		if err := s.agents.Insert(ctx, s.data.Agents); err != nil {
			return err
		}
		for i, a := range s.data.Agents {
			if want := int64(i + 1); a.ID != want {
				return fmt.Errorf("%w: %q got %d, want %d", ErrUnexpectedAgentID, a.Name, a.ID, want)
			}
		}
		s.result.AgentsInserted = len(s.data.Agents)
		return nil
	}},
	{PhaseInsertCases, func(ctx context.Context, s *session) error {
		if err := s.cases.Insert(ctx, s.data.Cases); err != nil {
			return err
		}
		s.result.CasesInserted = len(s.data.Cases)
		return nil
	}},
}

// Phases returns the phase names in execution order.
func Phases() []string {
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.name
	}
	return names
}

type session struct {
	agents domain.AgentStore
	cases  domain.CaseStore
	data   Dataset
	result *Result
}

type Runner struct {
	db      *database.DB
	logger  *zap.Logger
	dataset Dataset
}

type Option func(*Runner)

// WithDataset replaces the default demo data.
func WithDataset(d Dataset) Option {
	return func(r *Runner) {
		r.dataset = d
	}
}

func NewRunner(db *database.DB, logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		db:      db,
		logger:  logger,
		dataset: DefaultDataset(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run wipes both tables, resets their sequences and inserts the dataset,
// all inside one transaction. On failure nothing is changed and the error
// is a *StepError.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.New(), Profile: r.db.Profile()}
	logger := r.logger.With(
		zap.String("run_id", result.RunID.String()),
		zap.String("profile", result.Profile),
	)
	logger.Info("seed started", zap.String("client", r.db.Dialect().Name()))

	var completed []string
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		s := &session{
			agents: store.NewAgentStore(tx, r.db.Dialect()),
			cases:  store.NewCaseStore(tx, r.db.Dialect()),
			data:   r.dataset.clone(),
			result: result,
		}

		for _, p := range phases {
			if err := p.run(ctx, s); err != nil {
				return &StepError{Phase: p.name, Completed: completed, Err: err}
			}
			completed = append(completed, p.name)
			logger.Debug("seed phase done", zap.String("phase", p.name))
		}
		return nil
	})
	if err != nil {
		var stepErr *StepError
		if !errors.As(err, &stepErr) {
			stepErr = &StepError{Phase: phaseTransaction, Completed: completed, Err: err}
		}
		logger.Error("seed failed, rolled back",
			zap.String("phase", stepErr.Phase),
			zap.Strings("completed", stepErr.Completed),
			zap.Error(stepErr.Err),
		)
		return nil, stepErr
	}

	result.Duration = time.Since(start)
	logger.Info("seed completed",
		zap.Int64("cases_deleted", result.CasesDeleted),
		zap.Int64("agents_deleted", result.AgentsDeleted),
		zap.Int("agents_inserted", result.AgentsInserted),
		zap.Int("cases_inserted", result.CasesInserted),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}
