package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/caseworks/user-portal/config"
	redisstore "github.com/caseworks/user-portal/internal/adapters/redis"
	"github.com/caseworks/user-portal/internal/ports"
	"github.com/caseworks/user-portal/internal/service"
)

// ServiceDeps contains shared dependencies for service construction.
type ServiceDeps struct {
	Config      *config.AppConfig
	Directory   ports.UserDirectory
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the application services wired to their adapters.
type ServiceContainer struct {
	Auth     *service.AuthService
	Authz    *service.Authorizer
	Profiles *service.ProfileService
	Admin    *service.AdminService
}

// NewServices wires the session store and user service client into the
// application services.
func NewServices(deps *ServiceDeps) ServiceContainer {
	sessions := redisstore.NewSessionStore(deps.RedisClient)

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Directory:  deps.Directory,
			Sessions:   sessions,
			SessionTTL: deps.Config.Session.TTL,
			Logger:     deps.Logger,
		}),
		Authz: service.NewAuthorizer(service.AuthorizerOptions{
			Directory: deps.Directory,
			Logger:    deps.Logger,
		}),
		Profiles: service.NewProfileService(service.ProfileServiceOptions{
			Directory: deps.Directory,
		}),
		Admin: service.NewAdminService(service.AdminServiceOptions{
			Directory: deps.Directory,
			Logger:    deps.Logger,
		}),
	}
}
