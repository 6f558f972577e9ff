package domain

type CaseStatus string

const (
	StatusAberto      CaseStatus = "aberto"
	StatusSolucionado CaseStatus = "solucionado"
)

// Case is a row of the casos table. AgentID must reference an existing agent.
type Case struct {
	ID          int64      `json:"id"`
	Title       string     `json:"titulo"`
	Description string     `json:"descricao"`
	Status      CaseStatus `json:"status"`
	AgentID     int64      `json:"agente_id"`
}
