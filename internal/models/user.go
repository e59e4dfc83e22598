package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// User is the stored account document. UserID is the application key;
// ID is Mongo's own identity and is never exposed.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"userId" json:"userId"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password,omitempty" json:"-"` // bcrypt hash, never returned
	FullName  string             `bson:"fullName" json:"fullName"`
	Age       int                `bson:"age" json:"age"`
	Email     string             `bson:"email" json:"email"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	Hobbies   []string           `bson:"hobbies" json:"hobbies"`
	Address   Address            `bson:"address" json:"address"`
	Orders    []Order            `bson:"orders" json:"orders"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Normalize replaces nil slices so they serialise as [] rather than null.
func (u *User) Normalize() {
	if u.Hobbies == nil {
		u.Hobbies = []string{}
	}
	if u.Orders == nil {
		u.Orders = []Order{}
	}
}

// Clone returns a deep copy that shares no slices with u.
func (u User) Clone() User {
	out := u
	if u.Hobbies != nil {
		out.Hobbies = append([]string(nil), u.Hobbies...)
	}
	if u.Orders != nil {
		out.Orders = append([]Order(nil), u.Orders...)
	}
	return out
}

// Summary projects a user to the fields exposed by the list endpoint.
func (u User) Summary() UserSummary {
	return UserSummary{
		Username: u.Username,
		FullName: u.FullName,
		Age:      u.Age,
		Email:    u.Email,
		Address:  u.Address,
	}
}

// UserSummary is the list view: no password, no orders.
type UserSummary struct {
	Username string  `bson:"username" json:"username"`
	FullName string  `bson:"fullName" json:"fullName"`
	Age      int     `bson:"age" json:"age"`
	Email    string  `bson:"email" json:"email"`
	Address  Address `bson:"address" json:"address"`
}
