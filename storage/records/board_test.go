package records

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/tmahmud/shikkha/core/board"
	"github.com/tmahmud/shikkha/storage/kvstore"
)

func TestBoardRepository_Notices(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository(kvstore.NewMemoryStore())

	n1 := board.Notice{ID: "n1", Title: "প্রথম", Content: "...", Date: "01/06/2025"}
	n2 := board.Notice{ID: "n2", Title: "দ্বিতীয়", Content: "...", Date: "02/06/2025"}
	n3 := board.Notice{ID: "n3", Title: "তৃতীয়", Content: "...", Date: "03/06/2025"}
	for _, n := range []board.Notice{n1, n2, n3} {
		if _, err := repo.CreateNotice(ctx, n); err != nil {
			t.Fatalf("CreateNotice() error = %v", err)
		}
	}

	// creates prepend: newest first
	notices, err := repo.QueryAllNotices(ctx)
	if err != nil {
		t.Fatalf("QueryAllNotices() error = %v", err)
	}
	assert.Equal(t, []board.Notice{n3, n2, n1}, notices)

	// delete from the middle keeps the remaining order
	if err = repo.DeleteNotice(ctx, "n2"); err != nil {
		t.Fatalf("DeleteNotice() error = %v", err)
	}
	notices, _ = repo.QueryAllNotices(ctx)
	assert.Equal(t, []board.Notice{n3, n1}, notices)

	if err = repo.DeleteNotice(ctx, "n2"); errors.Cause(err) != board.ErrNotFound {
		t.Errorf("DeleteNotice() error = %v, wantErr %v", err, board.ErrNotFound)
	}
}

func TestBoardRepository_Banners(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository(kvstore.NewMemoryStore())

	b1 := board.Banner{ID: "b1", ImageURL: "data:image/png;base64,AAAA", Size: board.SizeLarge}
	b2 := board.Banner{ID: "b2", ImageURL: "data:image/png;base64,BBBB", Size: board.SizeSmall}
	for _, b := range []board.Banner{b1, b2} {
		if _, err := repo.CreateBanner(ctx, b); err != nil {
			t.Fatalf("CreateBanner() error = %v", err)
		}
	}

	banners, err := repo.QueryAllBanners(ctx)
	if err != nil {
		t.Fatalf("QueryAllBanners() error = %v", err)
	}
	assert.Equal(t, []board.Banner{b2, b1}, banners)

	if err = repo.DeleteBanner(ctx, "b1"); err != nil {
		t.Fatalf("DeleteBanner() error = %v", err)
	}
	banners, _ = repo.QueryAllBanners(ctx)
	assert.Equal(t, []board.Banner{b2}, banners)
}

func TestBoardRepository_Links(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository(kvstore.NewMemoryStore())

	l1 := board.SchoolLink{ID: "l1", Title: "বোর্ড", URL: "https://dhakaeducationboard.gov.bd"}
	l2 := board.SchoolLink{ID: "l2", Title: "এনসিটিবি", URL: "https://nctb.gov.bd"}
	for _, l := range []board.SchoolLink{l1, l2} {
		if _, err := repo.CreateLink(ctx, l); err != nil {
			t.Fatalf("CreateLink() error = %v", err)
		}
	}

	links, err := repo.QueryAllLinks(ctx)
	if err != nil {
		t.Fatalf("QueryAllLinks() error = %v", err)
	}
	assert.Equal(t, []board.SchoolLink{l2, l1}, links)

	if err = repo.DeleteLink(ctx, "l2"); err != nil {
		t.Fatalf("DeleteLink() error = %v", err)
	}
	links, _ = repo.QueryAllLinks(ctx)
	assert.Equal(t, []board.SchoolLink{l1}, links)

	if err = repo.DeleteLink(ctx, "l2"); errors.Cause(err) != board.ErrNotFound {
		t.Errorf("DeleteLink() error = %v, wantErr %v", err, board.ErrNotFound)
	}
}

// collections sharing one store must not clobber each other
func TestBoardRepository_SharedStore(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewBoardRepository(store)

	_, _ = repo.CreateNotice(ctx, board.Notice{ID: "n1", Title: "T", Content: "C"})
	_, _ = repo.CreateBanner(ctx, board.Banner{ID: "b1", ImageURL: "data:image/png;base64,AAAA", Size: board.SizeSmall})
	_, _ = repo.CreateLink(ctx, board.SchoolLink{ID: "l1", Title: "T", URL: "https://x.bd"})

	notices, _ := repo.QueryAllNotices(ctx)
	banners, _ := repo.QueryAllBanners(ctx)
	links, _ := repo.QueryAllLinks(ctx)
	assert.Len(t, notices, 1)
	assert.Len(t, banners, 1)
	assert.Len(t, links, 1)
}
