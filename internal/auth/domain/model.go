// Package domain contains the account types. Sign-in itself lives outside
// this service; accounts are only provisioned by the seed loader.
package domain

// User is a dashboard account. Password always holds a bcrypt hash.
type User struct {
	ID       string `gorm:"type:uuid;primaryKey" yaml:"id"`
	Name     string `gorm:"type:varchar(255);not null" yaml:"name"`
	Email    string `gorm:"type:text;not null;uniqueIndex" yaml:"email"`
	Password string `gorm:"type:text;not null" yaml:"password"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
