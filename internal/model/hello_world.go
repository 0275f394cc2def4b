package model

// HelloWorld is a plain application table, unrelated to auth.
type HelloWorld struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Message string `json:"message" gorm:"type:text;not null"`
}

// TableName keeps the singular table name.
func (HelloWorld) TableName() string { return "hello_world" }
