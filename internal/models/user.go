// internal/models/user.go
package models

const DefaultUserName = "Guest User"

type User struct {
	BaseModel
	Name    string `json:"name" gorm:"size:100;not null;default:'Guest User'"`
	Phone   string `json:"phone" gorm:"uniqueIndex;size:20;not null"`
	IsAdmin bool   `json:"isAdmin" gorm:"not null;default:false"`
}
