package notification

import (
	"gorm.io/gorm"

	"github.com/Salsabil-210/comhabits/internal/realtime"
)

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(db *gorm.DB, hub realtime.Directory) *Container {
	service := NewService(NewRepository(db), hub)

	return &Container{
		Handler: NewHandler(service),
		Service: service,
	}
}
