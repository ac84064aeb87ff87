package app

import (
	"database/sql"

	"github.com/go-chi/oauth"
	"github.com/go-playground/validator/v10"
	"github.com/mbolis/fieldform/config"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
	Validate *validator.Validate
}
