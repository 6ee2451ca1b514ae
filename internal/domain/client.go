package domain

// Client клиент салона
type Client struct {
	ID         string
	Name       string
	Phone      string
	Email      string
	Dependents []Dependent

	// PendingServices старая форма хранения долгов по услугам прямо в документе клиента
	PendingServices []PendingService
}

// Dependent зависимое лицо (ребенок и т.п.), на которого тоже можно записать
type Dependent struct {
	ID           string
	Name         string
	Relationship string
}
