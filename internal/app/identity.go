package app

import (
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/external/identity"
)

func (a *application) InitIdentityProvider() domain.IdentityProvider {
	return identity.NewIdentityProvider(a.config.Identity.URL, a.config.Identity.APIKey)
}
