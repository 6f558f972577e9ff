package domain

import "time"

type AgentRole string

const (
	RoleDelegado AgentRole = "delegado"
	RoleInspetor AgentRole = "inspetor"
)

// Agent is a row of the agentes table.
type Agent struct {
	ID                int64     `json:"id"`
	Name              string    `json:"nome"`
	IncorporationDate time.Time `json:"dataDeIncorporacao"`
	Role              AgentRole `json:"cargo"`
}
