package user

import "gorm.io/gorm"

type UserContainer struct {
	Repository UserRepository
	Handler    *Handler
}

func NewUserContainer(db *gorm.DB) *UserContainer {
	repo := NewRepository(db)
	return &UserContainer{
		Repository: repo,
		Handler:    NewHandler(NewService(repo)),
	}
}
