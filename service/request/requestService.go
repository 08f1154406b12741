package requestsvc

import (
	"context"
	"time"

	"shareit/model"
	"shareit/service/apperr"
)

type Repo interface {
	Insert(ctx context.Context, rq *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.Request, error)
	ListOthers(ctx context.Context, viewerID int64, offset, limit int) ([]model.Request, error)
}

type Items interface {
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type Users interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*model.Request, error)
	Get(ctx context.Context, viewerID, requestID int64) (*model.RequestView, error)
	ListMine(ctx context.Context, requesterID int64) ([]model.RequestView, error)
	ListOthers(ctx context.Context, viewerID int64, from, size int) ([]model.RequestView, error)
}

type service struct {
	r     Repo
	items Items
	users Users
	now   func() time.Time
}

func New(r Repo, items Items, users Users) Service {
	return &service{r: r, items: items, users: users, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*model.Request, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}
	rq := &model.Request{
		Description: description,
		RequesterID: requesterID,
		Created:     s.now(),
	}
	if err := s.r.Insert(ctx, rq); err != nil {
		return nil, err
	}
	return rq, nil
}

func (s *service) Get(ctx context.Context, viewerID, requestID int64) (*model.RequestView, error) {
	if err := s.checkUser(ctx, viewerID); err != nil {
		return nil, err
	}
	rq, err := s.r.ByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if rq == nil {
		return nil, apperr.NotFound("request not found")
	}
	views, err := s.annotate(ctx, []model.Request{*rq})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *service) ListMine(ctx context.Context, requesterID int64) ([]model.RequestView, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.r.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, viewerID int64, from, size int) ([]model.RequestView, error) {
	if err := s.checkUser(ctx, viewerID); err != nil {
		return nil, err
	}
	requests, err := s.r.ListOthers(ctx, viewerID, from, size)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, requests)
}

func (s *service) checkUser(ctx context.Context, id int64) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("user not found")
	}
	return nil
}

// annotate attaches fulfilling items to a page of requests with a single
// batched item lookup.
func (s *service) annotate(ctx context.Context, requests []model.Request) ([]model.RequestView, error) {
	if len(requests) == 0 {
		return []model.RequestView{}, nil
	}
	ids := make([]int64, len(requests))
	for i, rq := range requests {
		ids[i] = rq.ID
	}
	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]model.Item)
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
	}
	out := make([]model.RequestView, 0, len(requests))
	for _, rq := range requests {
		fulfilling := byRequest[rq.ID]
		if fulfilling == nil {
			fulfilling = []model.Item{}
		}
		out = append(out, model.RequestView{Request: rq, Items: fulfilling})
	}
	return out, nil
}
