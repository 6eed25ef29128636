// internal/models/review.go
package models

type Review struct {
	BaseModel
	Name  string `json:"name" gorm:"size:100;not null"`
	Text  string `json:"text" gorm:"type:text;not null"`
	Stars int    `json:"stars" gorm:"not null"`
}

type ContactMessage struct {
	BaseModel
	Name    string `json:"name" gorm:"size:100;not null"`
	Email   string `json:"email" gorm:"size:255;not null"`
	Subject string `json:"subject" gorm:"size:255"`
	Message string `json:"message" gorm:"type:text;not null"`
}
