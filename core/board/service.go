package board

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("record not found")

	// NowFunc is mockable for tests.
	NowFunc = time.Now
)

type (
	// NoticeRepository persists the notice collection, newest first.
	// Create prepends; Delete removes exactly one record and keeps the
	// relative order of the remainder.
	NoticeRepository interface {
		CreateNotice(ctx context.Context, n Notice) (Notice, error)
		QueryAllNotices(ctx context.Context) ([]Notice, error)
		DeleteNotice(ctx context.Context, id string) error
	}

	BannerRepository interface {
		CreateBanner(ctx context.Context, b Banner) (Banner, error)
		QueryAllBanners(ctx context.Context) ([]Banner, error)
		DeleteBanner(ctx context.Context, id string) error
	}

	LinkRepository interface {
		CreateLink(ctx context.Context, l SchoolLink) (SchoolLink, error)
		QueryAllLinks(ctx context.Context) ([]SchoolLink, error)
		DeleteLink(ctx context.Context, id string) error
	}

	Service struct {
		notices NoticeRepository
		banners BannerRepository
		links   LinkRepository
	}
)

func NewService(notices NoticeRepository, banners BannerRepository, links LinkRepository) *Service {
	return &Service{
		notices: notices,
		banners: banners,
		links:   links,
	}
}

func (svc *Service) CreateNotice(ctx context.Context, nn NewNotice) (Notice, error) {
	n := Notice{
		ID:      uuid.New().String(),
		Title:   nn.Title,
		Content: nn.Content,
		Date:    NowFunc().Format("02/01/2006"),
		Link:    nn.Link,
	}
	n, err := svc.notices.CreateNotice(ctx, n)
	return n, errors.Wrap(err, "creating notice")
}

func (svc *Service) Notices(ctx context.Context) ([]Notice, error) {
	notices, err := svc.notices.QueryAllNotices(ctx)
	return notices, errors.Wrap(err, "querying notices")
}

func (svc *Service) DeleteNotice(ctx context.Context, id string) error {
	return errors.Wrap(svc.notices.DeleteNotice(ctx, id), "deleting notice")
}

func (svc *Service) CreateBanner(ctx context.Context, nb NewBanner) (Banner, error) {
	b := Banner{
		ID:        uuid.New().String(),
		ImageURL:  nb.ImageURL,
		Text:      nb.Text,
		Size:      nb.Size,
		CreatedAt: NowFunc().UTC(),
	}
	b, err := svc.banners.CreateBanner(ctx, b)
	return b, errors.Wrap(err, "creating banner")
}

func (svc *Service) Banners(ctx context.Context) ([]Banner, error) {
	banners, err := svc.banners.QueryAllBanners(ctx)
	return banners, errors.Wrap(err, "querying banners")
}

func (svc *Service) DeleteBanner(ctx context.Context, id string) error {
	return errors.Wrap(svc.banners.DeleteBanner(ctx, id), "deleting banner")
}

func (svc *Service) CreateLink(ctx context.Context, nl NewLink) (SchoolLink, error) {
	l := SchoolLink{
		ID:    uuid.New().String(),
		Title: nl.Title,
		URL:   nl.URL,
	}
	l, err := svc.links.CreateLink(ctx, l)
	return l, errors.Wrap(err, "creating link")
}

func (svc *Service) Links(ctx context.Context) ([]SchoolLink, error) {
	links, err := svc.links.QueryAllLinks(ctx)
	return links, errors.Wrap(err, "querying links")
}

func (svc *Service) DeleteLink(ctx context.Context, id string) error {
	return errors.Wrap(svc.links.DeleteLink(ctx, id), "deleting link")
}
