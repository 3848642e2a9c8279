// Package models defines the wire shapes exchanged with the user-directory
// service and the client-side session value.
package models

import "time"

// User is a directory entry as returned by the service.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Website   string    `json:"website,omitempty"`
	Address   *Address  `json:"address,omitempty"`
	Company   *Company  `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address belongs to exactly one User.
type Address struct {
	ID      string `json:"id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Street  string `json:"street"`
	Suite   string `json:"suite,omitempty"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     *Geo   `json:"geo,omitempty"`
}

type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Company belongs to exactly one User.
type Company struct {
	ID          string `json:"id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	Name        string `json:"name"`
	CatchPhrase string `json:"catch_phrase,omitempty"`
	BS          string `json:"bs,omitempty"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name     string                `json:"name"`
	Username string                `json:"username"`
	Email    string                `json:"email"`
	Phone    string                `json:"phone,omitempty"`
	Website  string                `json:"website,omitempty"`
	Address  *CreateAddressRequest `json:"address,omitempty"`
	Company  *CreateCompanyRequest `json:"company,omitempty"`
}

type CreateAddressRequest struct {
	Street  string `json:"street"`
	Suite   string `json:"suite,omitempty"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     *Geo   `json:"geo,omitempty"`
}

type CreateCompanyRequest struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catch_phrase,omitempty"`
	BS          string `json:"bs,omitempty"`
}

// UpdateUserRequest is the partial body of PUT /users/{id}.
// Nil fields are left out of the JSON and keep their server-side value.
type UpdateUserRequest struct {
	Name     *string               `json:"name,omitempty"`
	Username *string               `json:"username,omitempty"`
	Email    *string               `json:"email,omitempty"`
	Phone    *string               `json:"phone,omitempty"`
	Website  *string               `json:"website,omitempty"`
	Address  *CreateAddressRequest `json:"address,omitempty"`
	Company  *CreateCompanyRequest `json:"company,omitempty"`
}
