package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// UserID accepts either a JSON string or a JSON number and keeps its
// textual form, so {"userId": 7} and {"userId": "7"} address the same user.
type UserID string

func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("userId must be a string or number: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// UserInput is the create payload.
type UserInput struct {
	UserID   UserID   `json:"userId"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	FullName string   `json:"fullName"`
	Age      int      `json:"age"`
	Email    string   `json:"email"`
	IsActive *bool    `json:"isActive"` // defaults to true
	Hobbies  []string `json:"hobbies"`
	Address  Address  `json:"address"`
}

// UserPatch is the update payload. A nil field was absent from the request
// body and leaves the stored value untouched. userId and orders are not
// part of the patch and are ignored if sent.
type UserPatch struct {
	Username *string   `json:"username"`
	Password *string   `json:"password"`
	FullName *string   `json:"fullName"`
	Age      *int      `json:"age"`
	Email    *string   `json:"email"`
	IsActive *bool     `json:"isActive"`
	Hobbies  *[]string `json:"hobbies"`
	Address  *Address  `json:"address"`
}

func (p UserPatch) IsEmpty() bool {
	return len(p.SetFields()) == 0
}

// SetFields returns the $set document for the fields present in the patch.
func (p UserPatch) SetFields() bson.M {
	set := bson.M{}
	if p.Username != nil {
		set["username"] = *p.Username
	}
	if p.Password != nil {
		set["password"] = *p.Password
	}
	if p.FullName != nil {
		set["fullName"] = *p.FullName
	}
	if p.Age != nil {
		set["age"] = *p.Age
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.IsActive != nil {
		set["isActive"] = *p.IsActive
	}
	if p.Hobbies != nil {
		set["hobbies"] = *p.Hobbies
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	return set
}

// ApplyTo overwrites the fields of u that are present in the patch.
func (p UserPatch) ApplyTo(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.Hobbies != nil {
		u.Hobbies = append([]string(nil), (*p.Hobbies)...)
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
}
