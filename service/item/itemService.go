package itemsvc

import (
	"context"
	"strings"
	"time"

	"shareit/model"
	"shareit/service/apperr"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Item, error)
	Search(ctx context.Context, text string, offset, limit int) ([]model.Item, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type Bookings interface {
	LastApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error)
	NextApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error)
	HasFinishedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type Comments interface {
	Insert(ctx context.Context, c *model.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

// CreateItemInput is the creation payload. Available is a pointer so an
// omitted flag is told apart from an explicit false.
type CreateItemInput struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

type Service interface {
	Create(ctx context.Context, ownerID int64, in CreateItemInput) (*model.Item, error)
	Patch(ctx context.Context, userID, itemID int64, p model.ItemPatch) (*model.Item, error)
	Delete(ctx context.Context, itemID int64) error

	// Detail returns the item with its comments; the owner additionally sees
	// the most recent past and nearest future approved bookings.
	Detail(ctx context.Context, itemID, viewerID int64) (*model.ItemView, error)

	// ListByOwner pages the owner's catalog ascending by id. Last/next
	// booking lookups are batched over the whole page.
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemView, error)

	// Search matches available items by name or description substring. A
	// blank query yields an empty result.
	Search(ctx context.Context, viewerID int64, text string, from, size int) ([]model.Item, error)

	// AddComment records feedback from a user whose approved booking of the
	// item has already ended.
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*model.Comment, error)
}

type service struct {
	r        Repo
	users    Users
	bookings Bookings
	comments Comments
	now      func() time.Time
}

func New(r Repo, users Users, bookings Bookings, comments Comments) Service {
	return &service{
		r: r, users: users, bookings: bookings, comments: comments,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, in CreateItemInput) (*model.Item, error) {
	if in.Available == nil {
		return nil, apperr.BadEntity("available flag is required")
	}
	ok, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("owner not found")
	}
	it := &model.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	if err := s.r.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Patch(ctx context.Context, userID, itemID int64, p model.ItemPatch) (*model.Item, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item not found")
	}
	if it.OwnerID != userID {
		return nil, apperr.NotOwned("item does not belong to the user")
	}
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Available != nil {
		it.Available = *p.Available
	}
	if err := s.r.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Delete(ctx context.Context, itemID int64) error {
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return err
	}
	if it == nil {
		return apperr.NotFound("item not found")
	}
	return s.r.Delete(ctx, itemID)
}

func (s *service) Detail(ctx context.Context, itemID, viewerID int64) (*model.ItemView, error) {
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item not found")
	}
	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	view := &model.ItemView{Item: *it, Comments: emptyIfNil(comments)}
	if it.OwnerID != viewerID {
		return view, nil
	}

	now := s.now()
	last, err := s.bookings.LastApprovedForItems(ctx, []int64{itemID}, now)
	if err != nil {
		return nil, err
	}
	next, err := s.bookings.NextApprovedForItems(ctx, []int64{itemID}, now)
	if err != nil {
		return nil, err
	}
	view.LastBooking = pickLast(last)
	view.NextBooking = pickNext(next)
	return view, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemView, error) {
	items, err := s.r.ListByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []model.ItemView{}, nil
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	now := s.now()
	last, err := s.bookings.LastApprovedForItems(ctx, ids, now)
	if err != nil {
		return nil, err
	}
	next, err := s.bookings.NextApprovedForItems(ctx, ids, now)
	if err != nil {
		return nil, err
	}
	lastByItem := groupByItem(last)
	nextByItem := groupByItem(next)

	out := make([]model.ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, model.ItemView{
			Item:        it,
			LastBooking: pickLast(lastByItem[it.ID]),
			NextBooking: pickNext(nextByItem[it.ID]),
			Comments:    []model.Comment{},
		})
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, viewerID int64, text string, from, size int) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	ok, err := s.users.Exists(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	items, err := s.r.Search(ctx, text, from, size)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *service) AddComment(ctx context.Context, itemID, authorID int64, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.BadEntity("comment text cannot be blank")
	}
	author, err := s.users.ByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFound("user not found")
	}
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item not found")
	}
	now := s.now()
	eligible, err := s.bookings.HasFinishedApproved(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, apperr.BadEntity("a finished approved booking is required to comment")
	}
	c := &model.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.comments.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func groupByItem(bookings []model.Booking) map[int64][]model.Booking {
	m := make(map[int64][]model.Booking)
	for _, b := range bookings {
		m[b.ItemID] = append(m[b.ItemID], b)
	}
	return m
}

// pickLast selects the booking with the latest end among past approved ones.
func pickLast(bookings []model.Booking) *model.ItemBookingView {
	var best *model.Booking
	for i := range bookings {
		if best == nil || bookings[i].End.After(best.End) {
			best = &bookings[i]
		}
	}
	if best == nil {
		return nil
	}
	return &model.ItemBookingView{ID: best.ID, BookerID: best.BookerID}
}

// pickNext selects the booking with the earliest start among future approved
// ones.
func pickNext(bookings []model.Booking) *model.ItemBookingView {
	var best *model.Booking
	for i := range bookings {
		if best == nil || bookings[i].Start.Before(best.Start) {
			best = &bookings[i]
		}
	}
	if best == nil {
		return nil
	}
	return &model.ItemBookingView{ID: best.ID, BookerID: best.BookerID}
}

func emptyIfNil(cs []model.Comment) []model.Comment {
	if cs == nil {
		return []model.Comment{}
	}
	return cs
}
