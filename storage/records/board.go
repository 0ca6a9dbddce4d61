package records

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/tmahmud/shikkha/core/board"
	"github.com/tmahmud/shikkha/storage/kvstore"
)

// boardRepository backs all three board collections. New records are
// prepended so each collection stays newest-first without sorting.
type boardRepository struct {
	store kvstore.Store
}

var (
	_ board.NoticeRepository = (*boardRepository)(nil)
	_ board.BannerRepository = (*boardRepository)(nil)
	_ board.LinkRepository   = (*boardRepository)(nil)
)

func NewBoardRepository(store kvstore.Store) *boardRepository {
	return &boardRepository{store: store}
}

// Notices

func (repo *boardRepository) readNotices(ctx context.Context) ([]board.Notice, error) {
	data, err := repo.store.ReadCollection(ctx, kvstore.KeyNotices)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []board.Notice{}, nil
	}
	var notices []board.Notice
	if err = json.Unmarshal(data, &notices); err != nil {
		return nil, errors.Wrap(err, "decoding notice collection")
	}
	return notices, nil
}

func (repo *boardRepository) writeNotices(ctx context.Context, notices []board.Notice) error {
	data, err := json.Marshal(notices)
	if err != nil {
		return errors.Wrap(err, "encoding notice collection")
	}
	return repo.store.WriteCollection(ctx, kvstore.KeyNotices, data)
}

func (repo *boardRepository) CreateNotice(ctx context.Context, n board.Notice) (board.Notice, error) {
	notices, err := repo.readNotices(ctx)
	if err != nil {
		return board.Notice{}, err
	}
	notices = append([]board.Notice{n}, notices...)
	return n, repo.writeNotices(ctx, notices)
}

func (repo *boardRepository) QueryAllNotices(ctx context.Context) ([]board.Notice, error) {
	return repo.readNotices(ctx)
}

func (repo *boardRepository) DeleteNotice(ctx context.Context, id string) error {
	notices, err := repo.readNotices(ctx)
	if err != nil {
		return err
	}
	kept := notices[:0]
	var found bool
	for _, n := range notices {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return board.ErrNotFound
	}
	return repo.writeNotices(ctx, kept)
}

// Banners

func (repo *boardRepository) readBanners(ctx context.Context) ([]board.Banner, error) {
	data, err := repo.store.ReadCollection(ctx, kvstore.KeyBanners)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []board.Banner{}, nil
	}
	var banners []board.Banner
	if err = json.Unmarshal(data, &banners); err != nil {
		return nil, errors.Wrap(err, "decoding banner collection")
	}
	return banners, nil
}

func (repo *boardRepository) writeBanners(ctx context.Context, banners []board.Banner) error {
	data, err := json.Marshal(banners)
	if err != nil {
		return errors.Wrap(err, "encoding banner collection")
	}
	return repo.store.WriteCollection(ctx, kvstore.KeyBanners, data)
}

func (repo *boardRepository) CreateBanner(ctx context.Context, b board.Banner) (board.Banner, error) {
	banners, err := repo.readBanners(ctx)
	if err != nil {
		return board.Banner{}, err
	}
	banners = append([]board.Banner{b}, banners...)
	return b, repo.writeBanners(ctx, banners)
}

func (repo *boardRepository) QueryAllBanners(ctx context.Context) ([]board.Banner, error) {
	return repo.readBanners(ctx)
}

func (repo *boardRepository) DeleteBanner(ctx context.Context, id string) error {
	banners, err := repo.readBanners(ctx)
	if err != nil {
		return err
	}
	kept := banners[:0]
	var found bool
	for _, b := range banners {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return board.ErrNotFound
	}
	return repo.writeBanners(ctx, kept)
}

// Links

func (repo *boardRepository) readLinks(ctx context.Context) ([]board.SchoolLink, error) {
	data, err := repo.store.ReadCollection(ctx, kvstore.KeyLinks)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []board.SchoolLink{}, nil
	}
	var links []board.SchoolLink
	if err = json.Unmarshal(data, &links); err != nil {
		return nil, errors.Wrap(err, "decoding link collection")
	}
	return links, nil
}

func (repo *boardRepository) writeLinks(ctx context.Context, links []board.SchoolLink) error {
	data, err := json.Marshal(links)
	if err != nil {
		return errors.Wrap(err, "encoding link collection")
	}
	return repo.store.WriteCollection(ctx, kvstore.KeyLinks, data)
}

func (repo *boardRepository) CreateLink(ctx context.Context, l board.SchoolLink) (board.SchoolLink, error) {
	links, err := repo.readLinks(ctx)
	if err != nil {
		return board.SchoolLink{}, err
	}
	links = append([]board.SchoolLink{l}, links...)
	return l, repo.writeLinks(ctx, links)
}

func (repo *boardRepository) QueryAllLinks(ctx context.Context) ([]board.SchoolLink, error) {
	return repo.readLinks(ctx)
}

func (repo *boardRepository) DeleteLink(ctx context.Context, id string) error {
	links, err := repo.readLinks(ctx)
	if err != nil {
		return err
	}
	kept := links[:0]
	var found bool
	for _, l := range links {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return board.ErrNotFound
	}
	return repo.writeLinks(ctx, kept)
}
