package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/blog-api/internal/domain"
	"gorm.io/gorm"
)

// userModel is the row shape of the users table.
type userModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"not null;uniqueIndex"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

// postModel is the row shape of the posts table.
type postModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title     string     `gorm:"not null"`
	Content   string     `gorm:"not null"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Author    *userModel `gorm:"foreignKey:AuthorID;references:ID"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

func (postModel) TableName() string { return "posts" }

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m userModel) toDomain() *domain.User {
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toPostModel(p *domain.Post) postModel {
	return postModel{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m postModel) toDomain() *domain.Post {
	return &domain.Post{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		AuthorID:  m.AuthorID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// AutoMigrate creates the users and posts tables from the row models.
//
// Production schemas are owned by the goose migrations in the migrations
// package; AutoMigrate exists for throwaway databases such as the in-memory
// database used by tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{}, &postModel{})
}
