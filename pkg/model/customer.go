package model

type CustomerRecord struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

type Customer struct {
	ID             string `json:"id" bson:"-" validate:"pathkey"`
	CustomerRecord `bson:",inline"`
}

type CustomerUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func NewCustomer(id string, rec *CustomerRecord) *Customer {
	return &Customer{ID: id, CustomerRecord: *rec}
}
