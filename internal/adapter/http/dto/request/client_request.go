package request

import "pintura_xpto/internal/usecase"

// ClientUpdateRequest edits an existing client. Absent fields stay unchanged.
type ClientUpdateRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	Neighborhood *string `json:"neighborhood"`
}

func (r ClientUpdateRequest) ToCommand() usecase.UpdateClientCommand {
	return usecase.UpdateClientCommand{
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		Address:      r.Address,
		Neighborhood: r.Neighborhood,
	}
}
