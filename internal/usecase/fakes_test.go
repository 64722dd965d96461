package usecase

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/internal/data/query"
	"stay-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore backs the in-memory repositories. txMu plays the role of the
// listing row lock; mu guards the maps.
type memStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	listings map[uuid.UUID]*entity.Listing
	bookings []*entity.Booking
	sessions map[string]uuid.UUID

	createBookingErr error
	lastListingCond  query.Condition
	lastListingLimit int
	lastBookingCond  query.Condition
	lastBookingLimit int
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*entity.User),
		listings: make(map[uuid.UUID]*entity.Listing),
		sessions: make(map[string]uuid.UUID),
	}
}

func (st *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:    &memUserRepo{st},
		Listing: &memListingRepo{st},
		Booking: &memBookingRepo{st},
		Session: &memSessionRepo{st},
		Tx:      &memTx{st},
	}
}

func (st *memStore) addUser(email string) *entity.User {
	st.mu.Lock()
	defer st.mu.Unlock()

	base, _ := entity.NewBase(time.Now().UTC())
	u := &entity.User{Base: base, Email: email, FirstName: "Guest", LastName: "User", IsActive: true}
	st.users[u.ID] = u
	return u
}

func (st *memStore) addListing(hostID uuid.UUID, title, city, rate string) *entity.Listing {
	st.mu.Lock()
	defer st.mu.Unlock()

	base, _ := entity.NewBase(time.Now().UTC())
	l := &entity.Listing{
		Base:          base,
		Title:         title,
		City:          city,
		PricePerNight: decimal.RequireFromString(rate),
		MaxGuests:     4,
		Photos:        []string{"https://example.com/a.jpg"},
		HostID:        hostID,
	}
	st.listings[l.ID] = l
	return l
}

func (st *memStore) addBooking(listingID, userID uuid.UUID, stay entity.StayRange, status entity.BookingStatus) *entity.Booking {
	st.mu.Lock()
	defer st.mu.Unlock()

	base, _ := entity.NewBase(time.Now().UTC())
	b := &entity.Booking{Base: base, ListingID: listingID, UserID: userID, Status: status, Stay: stay, NumberOfGuests: 1}
	st.bookings = append(st.bookings, b)
	return b
}

func (st *memStore) bookingCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.bookings)
}

func (st *memStore) view(l *entity.Listing) *entity.ListingView {
	v := &entity.ListingView{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		PricePerNight: l.PricePerNight,
		City:          l.City,
		Photos:        l.Photos,
		MaxGuests:     l.MaxGuests,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if host, ok := st.users[l.HostID]; ok {
		v.HostFirstName = host.FirstName
		v.HostLastName = host.LastName
		v.HostEmail = host.Email
	}
	return v
}

func listingRow(l *entity.Listing) query.Row {
	return query.Row{
		"l.id":              l.ID,
		"l.title":           l.Title,
		"l.city":            l.City,
		"l.price_per_night": l.PricePerNight,
		"l.max_guests":      l.MaxGuests,
		"l.host_id":         l.HostID,
	}
}

func bookingRow(b *entity.Booking) query.Row {
	return query.Row{
		"b.id":         b.ID,
		"b.listing_id": b.ListingID,
		"b.user_id":    b.UserID,
		"b.status":     string(b.Status),
		"b.check_in":   b.Stay.CheckIn,
		"b.check_out":  b.Stay.CheckOut,
		"b.created_at": b.CreatedAt,
	}
}

// source serves Exists subqueries; callers hold mu.
func (st *memStore) source(from string) ([]query.Row, error) {
	if from != "bookings b" {
		return nil, fmt.Errorf("memStore: unknown table %q", from)
	}
	rows := make([]query.Row, len(st.bookings))
	for i, b := range st.bookings {
		rows[i] = bookingRow(b)
	}
	return rows, nil
}

type memTx struct{ st *memStore }

// WithinTx serialises units of work and drops bookings inserted by a failed one.
func (t *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context, repo *repository.Repository) error) error {
	t.st.txMu.Lock()
	defer t.st.txMu.Unlock()

	before := t.st.bookingCount()
	if err := fn(ctx, t.st.repository()); err != nil {
		t.st.mu.Lock()
		t.st.bookings = t.st.bookings[:before]
		t.st.mu.Unlock()
		return err
	}
	return nil
}

type memUserRepo struct{ st *memStore }

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, u := range r.st.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	r.st.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.users[id], nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, u := range r.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type memListingRepo struct{ st *memStore }

func (r *memListingRepo) Create(_ context.Context, listing *entity.Listing) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.listings[listing.ID] = listing
	return nil
}

// Fetch evaluates cond the way the SQL repository would, newest id first.
func (r *memListingRepo) Fetch(_ context.Context, cond query.Condition, limit int) ([]*entity.ListingView, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.lastListingCond = cond
	r.st.lastListingLimit = limit

	views := make([]*entity.ListingView, 0, len(r.st.listings))
	for _, l := range r.st.listings {
		ok, err := query.Match(cond, listingRow(l), r.st.source)
		if err != nil {
			return nil, err
		}
		if ok {
			views = append(views, r.st.view(l))
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return bytes.Compare(views[i].ID[:], views[j].ID[:]) > 0
	})
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

func (r *memListingRepo) FindOne(ctx context.Context, cond query.Condition) (*entity.ListingView, error) {
	views, err := r.Fetch(ctx, cond, 1)
	if err != nil || len(views) == 0 {
		return nil, err
	}
	return views[0], nil
}

func (r *memListingRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*entity.Listing, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.listings[id], nil
}

func (r *memListingRepo) FindByTitle(_ context.Context, title string) (*entity.Listing, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, l := range r.st.listings {
		if l.Title == title {
			return l, nil
		}
	}
	return nil, nil
}

type memBookingRepo struct{ st *memStore }

func (r *memBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.createBookingErr != nil {
		return r.st.createBookingErr
	}
	r.st.bookings = append(r.st.bookings, booking)
	return nil
}

func (r *memBookingRepo) IsAvailable(_ context.Context, listingID uuid.UUID, stay entity.StayRange) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, b := range r.st.bookings {
		if b.ListingID == listingID && b.Status.IsActive() && b.Stay.Overlaps(stay) {
			return false, nil
		}
	}
	return true, nil
}

func (r *memBookingRepo) Fetch(_ context.Context, cond query.Condition, limit int) ([]*entity.BookingView, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.lastBookingCond = cond
	r.st.lastBookingLimit = limit

	views := make([]*entity.BookingView, 0, len(r.st.bookings))
	for _, b := range r.st.bookings {
		ok, err := query.Match(cond, bookingRow(b), r.st.source)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		v := &entity.BookingView{
			ID:             b.ID,
			ListingID:      b.ListingID,
			UserID:         b.UserID,
			Status:         b.Status,
			CheckIn:        b.Stay.CheckIn,
			CheckOut:       b.Stay.CheckOut,
			NumberOfGuests: b.NumberOfGuests,
			TotalPrice:     b.TotalPrice,
			CreatedAt:      b.CreatedAt,
		}
		if l, ok := r.st.listings[b.ListingID]; ok {
			v.ListingTitle, v.ListingCity = l.Title, l.City
		}
		if u, ok := r.st.users[b.UserID]; ok {
			v.UserEmail = u.Email
		}
		views = append(views, v)
	}
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
		return bytes.Compare(views[i].ID[:], views[j].ID[:]) > 0
	})
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

func (r *memBookingRepo) FindOne(ctx context.Context, cond query.Condition) (*entity.BookingView, error) {
	views, err := r.Fetch(ctx, cond, 1)
	if err != nil || len(views) == 0 {
		return nil, err
	}
	return views[0], nil
}

func (r *memBookingRepo) CountByListing(_ context.Context, listingID uuid.UUID) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int64
	for _, b := range r.st.bookings {
		if b.ListingID == listingID {
			n++
		}
	}
	return n, nil
}

type memSessionRepo struct{ st *memStore }

func (r *memSessionRepo) Store(_ context.Context, tokenID string, userID uuid.UUID, _ time.Duration) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.sessions[tokenID] = userID
	return nil
}

func (r *memSessionRepo) Consume(_ context.Context, tokenID string) (uuid.UUID, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	owner := r.st.sessions[tokenID]
	delete(r.st.sessions, tokenID)
	return owner, nil
}

func (r *memSessionRepo) Revoke(_ context.Context, tokenID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	delete(r.st.sessions, tokenID)
	return nil
}
