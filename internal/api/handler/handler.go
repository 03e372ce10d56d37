package handler

import (
	"github.com/shelfmark/shelfmark/internal/service"
)

// Handler bundles the services behind the HTTP surface. Handlers only ever
// talk to the access facade and the glue services, never to repositories.
type Handler struct {
	access   *service.AccessService
	profiles *service.ProfileService
	catalog  *service.CatalogService
}

func New(access *service.AccessService, profiles *service.ProfileService, catalog *service.CatalogService) *Handler {
	return &Handler{access: access, profiles: profiles, catalog: catalog}
}
