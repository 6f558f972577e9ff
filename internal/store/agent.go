package store

import (
	"context"
	"time"

	"github.com/Harshitk-cp/casebook/internal/database"
	"github.com/Harshitk-cp/casebook/internal/domain"
)

const agentsTable = "agentes"

type AgentStore struct {
	db      database.Querier
	dialect database.Dialect
}

func NewAgentStore(db database.Querier, dialect database.Dialect) *AgentStore {
	return &AgentStore{db: db, dialect: dialect}
}

func (s *AgentStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM agentes`)
	if err != nil {
		return 0, classify(err)
	}
	return res.RowsAffected()
}

// ResetSequence makes the next inserted agent get id 1.
func (s *AgentStore) ResetSequence(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.dialect.ResetSequenceSQL(agentsTable))
	return err
}

// Insert writes agents in order and sets each ID from the generated key.
func (s *AgentStore) Insert(ctx context.Context, agents []domain.Agent) error {
	query := s.dialect.Rebind(
		`INSERT INTO agentes (nome, "dataDeIncorporacao", cargo)
		 VALUES (?, ?, ?)
		 RETURNING id`)

	for i := range agents {
		a := &agents[i]
		err := s.db.QueryRowContext(ctx, query,
			a.Name, a.IncorporationDate.Format(time.DateOnly), string(a.Role),
		).Scan(&a.ID)
		if err != nil {
			return classify(err)
		}
	}
	return nil
}

func (s *AgentStore) List(ctx context.Context) ([]domain.Agent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nome, "dataDeIncorporacao", cargo FROM agentes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		var a domain.Agent
		var role string
		if err := rows.Scan(&a.ID, &a.Name, dateColumn{&a.IncorporationDate}, &role); err != nil {
			return nil, err
		}
		a.Role = domain.AgentRole(role)
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

var _ domain.AgentStore = (*AgentStore)(nil)
