package container

import (
	app "lens-inspector/internal/application"
	"lens-inspector/internal/domain/port"
)

type Container struct {
	UserService       *app.UserService
	InspectionService *app.InspectionService
}

func New(userRepo port.UserRepository, inspector port.LensInspector, describer port.DefectDescriber) *Container {
	userService := app.NewUserService(userRepo)
	inspectionService := app.NewInspectionService(userService, inspector, describer)

	return &Container{
		UserService:       userService,
		InspectionService: inspectionService,
	}
}
