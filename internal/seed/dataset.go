package seed

import (
	"time"

	"github.com/Harshitk-cp/casebook/internal/domain"
)

// Dataset is the full content written by a run. Cases reference agents by
// their position: the n-th agent gets id n once the sequences are reset.
type Dataset struct {
	Agents []domain.Agent
	Cases  []domain.Case
}

// DefaultDataset returns the demo data: two agents and one case each.
func DefaultDataset() Dataset {
	return Dataset{
		Agents: []domain.Agent{
			{
				Name:              "Maria Santos",
				IncorporationDate: time.Date(2019, time.June, 15, 0, 0, 0, 0, time.UTC),
				Role:              domain.RoleDelegado,
			},
			{
				Name:              "Pedro Oliveira",
				IncorporationDate: time.Date(2021, time.March, 22, 0, 0, 0, 0, time.UTC),
				Role:              domain.RoleInspetor,
			},
		},
		Cases: []domain.Case{
			{
				Title:       "Furto de veículo",
				Description: "Veículo Honda Civic foi furtado no estacionamento do shopping center",
				Status:      domain.StatusAberto,
				AgentID:     1,
			},
			{
				Title:       "Vandalismo em escola",
				Description: "Depredação das instalações da Escola Municipal José de Alencar",
				Status:      domain.StatusSolucionado,
				AgentID:     2,
			},
		},
	}
}

// clone copies the slices so a run never writes generated ids back into the
// caller's dataset.
func (d Dataset) clone() Dataset {
	return Dataset{
		Agents: append([]domain.Agent(nil), d.Agents...),
		Cases:  append([]domain.Case(nil), d.Cases...),
	}
}
