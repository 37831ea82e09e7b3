package handlers

import (
	"adboard/internal/repos"
	"adboard/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AdHandler       *AdHandler
	CategoryHandler *CategoryHandler
	AuthHandler     *AuthHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	adRepo := repos.NewAdRepo(db)

	registry := services.NewCategoryRegistry(catRepo, services.DefaultCategories())
	adSvc := services.NewAdService(adRepo, registry)

	return &Deps{
		AdHandler:       &AdHandler{Ads: adSvc},
		CategoryHandler: &CategoryHandler{Registry: registry},
		AuthHandler:     &AuthHandler{Auth: auth},
	}
}
