package engine

import (
	"fmt"

	"github.com/talgya/macro-sim/internal/economy"
)

// processInnovation converts accumulated R&D into permanent productivity,
// once per threshold crossed.
func (s *Simulation) processInnovation() {
	st := s.State
	for st.CumulativeRnD >= economy.InnovationThreshold {
		st.CumulativeRnD -= economy.InnovationThreshold
		st.ProductivityBonus += economy.InnovationProductivity
		st.ApprovalRating += economy.InnovationApprovalBoost
		st.InnovationTriggered = true

		s.EmitEvent(CategoryInnovation,
			fmt.Sprintf("research breakthrough lifts productivity to +%.1f%%", st.ProductivityBonus),
			map[string]any{"productivity_bonus": st.ProductivityBonus},
		)
	}
}
