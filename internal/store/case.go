package store

import (
	"context"

	"github.com/Harshitk-cp/casebook/internal/database"
	"github.com/Harshitk-cp/casebook/internal/domain"
)

const casesTable = "casos"

type CaseStore struct {
	db      database.Querier
	dialect database.Dialect
}

func NewCaseStore(db database.Querier, dialect database.Dialect) *CaseStore {
	return &CaseStore{db: db, dialect: dialect}
}

func (s *CaseStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM casos`)
	if err != nil {
		return 0, classify(err)
	}
	return res.RowsAffected()
}

// ResetSequence makes the next inserted case get id 1.
func (s *CaseStore) ResetSequence(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.dialect.ResetSequenceSQL(casesTable))
	return err
}

// Insert writes cases in order and sets each ID from the generated key.
// AgentID is stored as given; it must already exist in agentes.
func (s *CaseStore) Insert(ctx context.Context, cases []domain.Case) error {
	query := s.dialect.Rebind(
		`INSERT INTO casos (titulo, descricao, status, agente_id)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`)

	for i := range cases {
		c := &cases[i]
		err := s.db.QueryRowContext(ctx, query,
			c.Title, c.Description, string(c.Status), c.AgentID,
		).Scan(&c.ID)
		if err != nil {
			return classify(err)
		}
	}
	return nil
}

func (s *CaseStore) List(ctx context.Context) ([]domain.Case, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, titulo, descricao, status, agente_id FROM casos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []domain.Case
	for rows.Next() {
		var c domain.Case
		var status string
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &status, &c.AgentID); err != nil {
			return nil, err
		}
		c.Status = domain.CaseStatus(status)
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

var _ domain.CaseStore = (*CaseStore)(nil)
