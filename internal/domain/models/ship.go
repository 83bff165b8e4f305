package models

// Operator owns and runs ships.
type Operator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Ship is reference data; Capacity and OperatorID are optional.
type Ship struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Capacity   int    `json:"capacity,omitempty"`
	OperatorID string `json:"operator_id,omitempty"`
}
