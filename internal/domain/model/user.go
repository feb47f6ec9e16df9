// Package model contains domain entities exchanged with the user service.
package model

// User is a directory record as managed from the admin table.
// ID may be absent in upstream responses; the grid synthesizes one from the
// list index so that edit/save/cancel always target a stable row identity.
type User struct {
	ID               string `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	MobileNo         string `json:"mobile_no"`
	OrganizationName string `json:"organization_name"`
	Role             string `json:"role"`
}

// Profile is the signed-in user's own record as returned by the profile
// endpoint. Status is ACTIVE once the account's OTP has been verified.
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	MobileNo  string `json:"mobile_no"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

// Profile status values reported by the user service.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Registration carries a signup request. MobileNo is expected to already
// include the country prefix when handed to the directory client.
type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	MobileNo  string `json:"mobile_no"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ProfileUpdate carries an update to the signed-in user's own record.
// Email identifies the record and cannot be changed.
type ProfileUpdate struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	MobileNo  string `json:"mobile_no"`
}
