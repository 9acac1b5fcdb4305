package models

// Car is a vehicle registered in the garage.
type Car struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Model       string `json:"model"`
	PlateNumber string `json:"plate_number"`
	// Year is kept as text with exactly four digits.
	Year  string `json:"year"`
	Image *Image `json:"image,omitempty"`
}

func (c Car) EntityID() ID { return c.ID }

func (c Car) WithID(id ID) Car {
	c.ID = id
	return c
}

// CarWithActions is a car together with its maintenance history.
type CarWithActions struct {
	Car     Car      `json:"car"`
	Actions []Action `json:"actions"`
}
