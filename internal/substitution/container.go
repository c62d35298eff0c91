package substitution

import "gorm.io/gorm"

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(db *gorm.DB) *Container {
	service := NewService(NewRepository(db))

	return &Container{
		Handler: NewHandler(service),
		Service: service,
	}
}
