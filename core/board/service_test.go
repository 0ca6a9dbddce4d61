package board

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// fakeRepo backs all three collections, prepending on create like the
// record store does.
type fakeRepo struct {
	notices []Notice
	banners []Banner
	links   []SchoolLink
}

var (
	_ NoticeRepository = (*fakeRepo)(nil)
	_ BannerRepository = (*fakeRepo)(nil)
	_ LinkRepository   = (*fakeRepo)(nil)
)

func (r *fakeRepo) CreateNotice(_ context.Context, n Notice) (Notice, error) {
	r.notices = append([]Notice{n}, r.notices...)
	return n, nil
}

func (r *fakeRepo) QueryAllNotices(_ context.Context) ([]Notice, error) {
	return r.notices, nil
}

func (r *fakeRepo) DeleteNotice(_ context.Context, id string) error {
	for i := range r.notices {
		if r.notices[i].ID == id {
			r.notices = append(r.notices[:i], r.notices[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) CreateBanner(_ context.Context, b Banner) (Banner, error) {
	r.banners = append([]Banner{b}, r.banners...)
	return b, nil
}

func (r *fakeRepo) QueryAllBanners(_ context.Context) ([]Banner, error) {
	return r.banners, nil
}

func (r *fakeRepo) DeleteBanner(_ context.Context, id string) error {
	for i := range r.banners {
		if r.banners[i].ID == id {
			r.banners = append(r.banners[:i], r.banners[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) CreateLink(_ context.Context, l SchoolLink) (SchoolLink, error) {
	r.links = append([]SchoolLink{l}, r.links...)
	return l, nil
}

func (r *fakeRepo) QueryAllLinks(_ context.Context) ([]SchoolLink, error) {
	return r.links, nil
}

func (r *fakeRepo) DeleteLink(_ context.Context, id string) error {
	for i := range r.links {
		if r.links[i].ID == id {
			r.links = append(r.links[:i], r.links[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func setup() (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	return NewService(repo, repo, repo), repo
}

func TestService_Notices(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup()

	NowFunc = func() time.Time { return time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC) }
	defer func() { NowFunc = time.Now }()

	n1, err := svc.CreateNotice(ctx, NewNotice{Title: "ছুটির নোটিশ", Content: "আগামীকাল স্কুল বন্ধ"})
	if err != nil {
		t.Fatalf("CreateNotice() error = %v", err)
	}
	if n1.ID == "" {
		t.Error("CreateNotice() did not assign an ID")
	}
	assert.Equal(t, "05/06/2025", n1.Date)

	n2, _ := svc.CreateNotice(ctx, NewNotice{Title: "পরীক্ষার রুটিন", Content: "রুটিন প্রকাশিত", Link: "https://example.com/routine.pdf"})

	// newest first
	notices, err := svc.Notices(ctx)
	if err != nil {
		t.Fatalf("Notices() error = %v", err)
	}
	assert.Equal(t, []Notice{n2, n1}, notices)

	t.Run("delete keeps the remaining order", func(t *testing.T) {
		n3, _ := svc.CreateNotice(ctx, NewNotice{Title: "তৃতীয়", Content: "..."})

		if err := svc.DeleteNotice(ctx, n2.ID); err != nil {
			t.Fatalf("DeleteNotice() error = %v", err)
		}
		notices, _ := svc.Notices(ctx)
		assert.Equal(t, []Notice{n3, n1}, notices)
	})

	t.Run("delete unknown id", func(t *testing.T) {
		if err := svc.DeleteNotice(ctx, "nope"); errors.Cause(err) != ErrNotFound {
			t.Errorf("DeleteNotice() error = %v, wantErr %v", err, ErrNotFound)
		}
	})
}

func TestService_Banners(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup()

	NowFunc = func() time.Time { return time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC) }
	defer func() { NowFunc = time.Now }()

	b1, err := svc.CreateBanner(ctx, NewBanner{ImageURL: "data:image/png;base64,AAAA", Text: "ভর্তি চলছে", Size: SizeLarge})
	if err != nil {
		t.Fatalf("CreateBanner() error = %v", err)
	}
	assert.Equal(t, NowFunc(), b1.CreatedAt)

	b2, _ := svc.CreateBanner(ctx, NewBanner{ImageURL: "data:image/png;base64,BBBB", Size: SizeSmall})

	banners, err := svc.Banners(ctx)
	if err != nil {
		t.Fatalf("Banners() error = %v", err)
	}
	assert.Equal(t, []Banner{b2, b1}, banners)

	if err := svc.DeleteBanner(ctx, b1.ID); err != nil {
		t.Fatalf("DeleteBanner() error = %v", err)
	}
	banners, _ = svc.Banners(ctx)
	assert.Equal(t, []Banner{b2}, banners)
}

func TestService_Links(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup()

	l1, err := svc.CreateLink(ctx, NewLink{Title: "শিক্ষা বোর্ড", URL: "https://dhakaeducationboard.gov.bd"})
	if err != nil {
		t.Fatalf("CreateLink() error = %v", err)
	}
	l2, _ := svc.CreateLink(ctx, NewLink{Title: "এনসিটিবি", URL: "https://nctb.gov.bd"})

	links, err := svc.Links(ctx)
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}
	assert.Equal(t, []SchoolLink{l2, l1}, links)

	if err := svc.DeleteLink(ctx, l1.ID); err != nil {
		t.Fatalf("DeleteLink() error = %v", err)
	}
	links, _ = svc.Links(ctx)
	assert.Equal(t, []SchoolLink{l2}, links)
}
