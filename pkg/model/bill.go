package model

// Bill is a monthly charge owed by one resident. Status moves one way:
// {Unpaid, Overdue} -> Paid.
type Bill struct {
	ID       string  `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID   string  `json:"user_id" bson:"user_id" validate:"required,min=1,max=50"`
	Category string  `json:"category" bson:"category" validate:"required,oneof=Electricity Water Service Internet"`
	Amount   float64 `json:"amount" bson:"amount" validate:"required,gt=0"`
	Month    string  `json:"month" bson:"month" validate:"required,min=2,max=50"`
	DueDate  string  `json:"due_date" bson:"due_date" validate:"required,date_only"`
	Status   string  `json:"status" bson:"status" validate:"omitempty,oneof=Unpaid Overdue Paid"`
	PaidDate string  `json:"paid_date,omitempty" bson:"paid_date,omitempty" validate:"omitempty,date_only"`
}
