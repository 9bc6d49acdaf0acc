package model

import "github.com/google/uuid"

// Client and Advisor share the same person field set; Advisor adds the admin flag.

type Client struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	NationalID string    `json:"nationalId"`
	Age        int       `json:"age"`
}

type Advisor struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	NationalID string    `json:"nationalId"`
	Age        int       `json:"age"`
	IsAdmin    bool      `json:"isAdmin"`
}

// FullName is the display form used in lists, exports and sort keys.
func (c Client) FullName() string {
	return c.Name + " " + c.Surname
}

func (a Advisor) FullName() string {
	return a.Name + " " + a.Surname
}
