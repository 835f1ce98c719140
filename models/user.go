package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	FName        string               `bson:"fName" json:"fName"`
	LName        string               `bson:"lName" json:"lName"`
	Email        string               `bson:"email" json:"email"`
	PhoneNo      string               `bson:"phoneNo" json:"phoneNo"`
	Role         Role                 `bson:"role" json:"role"`
	Password     string               `bson:"password" json:"password,omitempty"`
	ProfileImage string               `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Favorites    []primitive.ObjectID `bson:"favorites,omitempty" json:"favorites,omitempty"`
}

// FullName is the display name bookings and reviews are matched against.
func (u *User) FullName() string {
	return u.FName + " " + u.LName
}

// Sanitized strips the credential hash before a user document goes over the wire.
func (u *User) Sanitized() UserResponse {
	return UserResponse{
		ID:           u.ID,
		FName:        u.FName,
		LName:        u.LName,
		Email:        u.Email,
		PhoneNo:      u.PhoneNo,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
	}
}

type UserResponse struct {
	ID           primitive.ObjectID `json:"_id"`
	FName        string             `json:"fName"`
	LName        string             `json:"lName"`
	Email        string             `json:"email"`
	PhoneNo      string             `json:"phoneNo"`
	Role         Role               `json:"role"`
	ProfileImage string             `json:"profileImage,omitempty"`
}
