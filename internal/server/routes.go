package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/leadvine/leadvine/internal/api/v1"
	"github.com/leadvine/leadvine/internal/store/postgres"
)

func registerAPIRoutes(api huma.API, store *postgres.Store) {
	v1.RegisterLeadRoutes(api, store)
}
