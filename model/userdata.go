package model

const AdminRole = "admin"

// Admin is an operator account stored in the admins collection.
type Admin struct {
	Id             ID     `json:"_id"`
	Login          string `json:"login"`
	HashedPassword string `json:"password_hash"`
	Role           string `json:"role"`
}
