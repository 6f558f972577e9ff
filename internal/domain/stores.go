package domain

import "context"

type AgentStore interface {
	DeleteAll(ctx context.Context) (int64, error)
	ResetSequence(ctx context.Context) error
	Insert(ctx context.Context, agents []Agent) error
	List(ctx context.Context) ([]Agent, error)
}

type CaseStore interface {
	DeleteAll(ctx context.Context) (int64, error)
	ResetSequence(ctx context.Context) error
	Insert(ctx context.Context, cases []Case) error
	List(ctx context.Context) ([]Case, error)
}
