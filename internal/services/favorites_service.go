package services

import "ecofinds/internal/repos"

type FavoritesService struct {
	Repo *repos.FavoriteRepo
}

func NewFavoritesService(r *repos.FavoriteRepo) *FavoritesService { return &FavoritesService{Repo: r} }

func (s *FavoritesService) Save(userID, productID string) error {
	return s.Repo.Add(userID, productID)
}

func (s *FavoritesService) Unsave(userID, productID string) error {
	return s.Repo.Remove(userID, productID)
}

func (s *FavoritesService) IsFavorite(userID, productID string) (bool, error) {
	return s.Repo.Is(userID, productID)
}

func (s *FavoritesService) List(userID string) ([]repos.FavoriteRow, error) {
	return s.Repo.List(userID)
}
