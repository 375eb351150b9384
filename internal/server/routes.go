package server

import (
	"github.com/jr777pal/PetNest-India/internal/config"
	"github.com/jr777pal/PetNest-India/internal/handler"
	"github.com/jr777pal/PetNest-India/internal/middleware"
	"github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Pet        *handler.PetHandler
	Wishlist   *handler.WishlistHandler
	Address    *handler.AddressHandler
	Checkout   *handler.CheckoutHandler
	Order      *handler.OrderHandler
	Adoption   *handler.AdoptionHandler
	AdminPet   *handler.AdminPetHandler
	AdminOrder *handler.AdminOrderHandler
	AdminUser  *handler.AdminUserHandler
}

// public / optional(匿名可) / authed(JWT + token_version) / admin(authed + adminロール)
func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	users repository.UserRepository,
	roles repository.UserRoleRepository,
	h Handlers,
) {
	public := e.Group("")
	optional := e.Group("", middleware.OptionalAuth(cfg))
	authed := e.Group("",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(users),
	)
	admin := e.Group("/admin",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(users),
		middleware.AdminRoleGuard(roles),
	)

	h.Auth.RegisterRoutes(public, authed)
	h.Pet.RegisterRoutes(public)
	h.Wishlist.RegisterRoutes(public)

	h.Address.RegisterRoutes(authed)
	h.Checkout.RegisterRoutes(authed)
	h.Order.RegisterRoutes(authed)

	h.Adoption.RegisterRoutes(optional, admin)

	h.AdminPet.RegisterRoutes(admin)
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminUser.RegisterRoutes(admin)
}
