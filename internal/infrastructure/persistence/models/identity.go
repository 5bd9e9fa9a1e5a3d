package models

import (
	"github.com/tripshare/backend/internal/domain/identity"
)

// UserModel is the persistence model for users.
type UserModel struct {
	AggregateModel
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password;type:text;not null"`
	Mantra       string `gorm:"type:varchar(128);not null"`
	BioPhoto     []byte `gorm:"type:bytea"`
	BioPhotoType string `gorm:"type:varchar(50)"`
}

// TableName returns the table name
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Mantra:       m.Mantra,
		BioPhoto:     m.BioPhoto,
		BioPhotoType: m.BioPhotoType,
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	user.Version = m.Version
	return user
}

// UserModelFromDomain converts a domain user to the persistence model
func UserModelFromDomain(user *identity.User) *UserModel {
	m := &UserModel{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Mantra:       user.Mantra,
		BioPhoto:     user.BioPhoto,
		BioPhotoType: user.BioPhotoType,
	}
	m.ID = user.ID
	m.CreatedAt = user.CreatedAt
	m.UpdatedAt = user.UpdatedAt
	m.Version = user.Version
	return m
}
