package services

import (
	"database/sql"
	"errors"

	"adboard/internal/domain"
	"adboard/internal/repos"
)

// ErrAdNotFound covers both true absence and an ownership mismatch, so a
// non-owner cannot tell whether an ad exists.
var ErrAdNotFound = errors.New("ad not found")

type AdService struct {
	Ads      *repos.AdRepo
	Registry *CategoryRegistry
}

func NewAdService(ads *repos.AdRepo, reg *CategoryRegistry) *AdService {
	return &AdService{Ads: ads, Registry: reg}
}

type CreateAdInput struct {
	Title       string
	Description string
	CategoryID  int64
	Price       float64
}

// Create reconciles the category first, then inserts the ad. The error
// from a disallowed category is ErrCategoryNotAllowed; no ad row is
// written in that case.
func (s *AdService) Create(ownerID int64, in CreateAdInput) (domain.Ad, error) {
	if _, err := s.Registry.Ensure(in.CategoryID); err != nil {
		return domain.Ad{}, err
	}
	return s.Ads.Create(ownerID, in.Title, in.Description, in.CategoryID, in.Price)
}

// ListMine returns the caller's own ads; zero ads is an empty slice,
// not an error.
func (s *AdService) ListMine(ownerID int64) ([]domain.Ad, error) {
	ads, err := s.Ads.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if ads == nil {
		ads = []domain.Ad{}
	}
	return ads, nil
}

func (s *AdService) Search(f repos.AdFilter) ([]domain.Ad, error) {
	ads, err := s.Ads.Search(f)
	if err != nil {
		return nil, err
	}
	if ads == nil {
		ads = []domain.Ad{}
	}
	return ads, nil
}

func (s *AdService) ListAll() ([]domain.Ad, error) {
	ads, err := s.Ads.ListAll()
	if err != nil {
		return nil, err
	}
	if ads == nil {
		ads = []domain.Ad{}
	}
	return ads, nil
}

// ListByUser is the third-party lookup: unlike ListMine it fails with
// ErrAdNotFound when the user has no ads.
func (s *AdService) ListByUser(userID int64) ([]domain.Ad, error) {
	ads, err := s.Ads.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	if len(ads) == 0 {
		return nil, ErrAdNotFound
	}
	return ads, nil
}

// loadOwned maps the scoped miss onto the single not-found error.
func (s *AdService) loadOwned(adID, callerID int64) (domain.Ad, error) {
	ad, err := s.Ads.GetOwned(adID, callerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Ad{}, ErrAdNotFound
		}
		return domain.Ad{}, err
	}
	return ad, nil
}

// Update applies a partial update to the caller's own ad. A changed
// category goes through the same reconciliation as Create.
func (s *AdService) Update(callerID, adID int64, fields repos.AdUpdate) (domain.Ad, error) {
	ad, err := s.loadOwned(adID, callerID)
	if err != nil {
		return domain.Ad{}, err
	}
	if fields.CategoryID != nil {
		if _, err := s.Registry.Ensure(*fields.CategoryID); err != nil {
			return domain.Ad{}, err
		}
	}
	return s.Ads.Update(ad, fields)
}

func (s *AdService) Delete(callerID, adID int64) error {
	ad, err := s.loadOwned(adID, callerID)
	if err != nil {
		return err
	}
	return s.Ads.Delete(ad)
}

// MarkSold sets the sold flag; repeating the call on an already-sold ad
// succeeds without effect.
func (s *AdService) MarkSold(callerID, adID int64) (domain.Ad, error) {
	ad, err := s.loadOwned(adID, callerID)
	if err != nil {
		return domain.Ad{}, err
	}
	return s.Ads.MarkSold(ad)
}
