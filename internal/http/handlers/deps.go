package handlers

import (
	"github.com/jmoiron/sqlx"

	"ecofinds/internal/cache"
	"ecofinds/internal/repos"
	"ecofinds/internal/services"
)

type Deps struct {
	AuthHandler      *AuthHandler
	ProductHandler   *ProductHandler
	CartHandler      *CartHandler
	CheckoutHandler  *CheckoutHandler
	FavoritesHandler *FavoritesHandler
}

func NewDeps(db *sqlx.DB, jwtSecret string, guard *cache.IdempotencyGuard) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	purchaseRepo := repos.NewPurchaseRepo(db)
	favRepo := repos.NewFavoriteRepo(db)

	authSvc := &services.AuthService{Users: userRepo, Secret: jwtSecret}
	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, prodRepo, purchaseRepo, guard)
	favSvc := services.NewFavoritesService(favRepo)

	return &Deps{
		AuthHandler:      &AuthHandler{Auth: authSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		CheckoutHandler:  &CheckoutHandler{Checkout: checkoutSvc},
		FavoritesHandler: &FavoritesHandler{Favs: favSvc, Catalog: catalogSvc},
	}
}
