package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waseet/event-social/internal/model"
	"github.com/waseet/event-social/internal/queue"
	"github.com/waseet/event-social/internal/repository"
)

type fakeEventRepo struct {
	events map[string]*model.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*model.Event{}}
}

func (r *fakeEventRepo) Create(_ context.Context, ev *model.Event) error {
	cp := *ev
	r.events[ev.ID] = &cp
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id string) (*model.Event, error) {
	ev, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ev
	return &cp, nil
}

func (r *fakeEventRepo) FindByCreator(_ context.Context, userID string) ([]model.Event, error) {
	var out []model.Event
	for _, ev := range r.events {
		if ev.CreatedBy.ID == userID {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Search(_ context.Context, f repository.EventFilter) ([]model.Event, int64, error) {
	var all []model.Event
	for _, ev := range r.events {
		all = append(all, *ev)
	}
	total := int64(len(all))
	start := (f.Page - 1) * f.PageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + f.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

type fakeRequestRepo struct {
	requests    map[string]*model.EventRequest
	dupOnCreate bool
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]*model.EventRequest{}}
}

func (r *fakeRequestRepo) Create(_ context.Context, req *model.EventRequest) error {
	if r.dupOnCreate {
		return repository.ErrDuplicate
	}
	for _, existing := range r.requests {
		if existing.User.ID == req.User.ID && existing.Event.ID == req.Event.ID {
			return repository.ErrDuplicate
		}
	}
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id string) (*model.EventRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) Exists(_ context.Context, userID, eventID string) (bool, error) {
	for _, req := range r.requests {
		if req.User.ID == userID && req.Event.ID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) FindPendingByEventOwner(_ context.Context, ownerID string) ([]model.EventRequest, error) {
	var out []model.EventRequest
	for _, req := range r.requests {
		if req.Status == model.StatusPending && req.Event.CreatedBy.ID == ownerID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) UpdateStatus(_ context.Context, id string, status model.RequestStatus) error {
	req, ok := r.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	req.Status = status
	return nil
}

type published struct {
	pattern string
	payload any
}

type fakePublisher struct {
	published []published
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, pattern string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, published{pattern: pattern, payload: payload})
	return nil
}

func testUser(id string) *model.User {
	return &model.User{
		ID:       id,
		Email:    id + "@example.com",
		FullName: "User " + id,
	}
}

func newEventHarness() (*EventService, *fakeEventRepo, *fakeRequestRepo, *fakePublisher) {
	events := newFakeEventRepo()
	requests := newFakeRequestRepo()
	pub := &fakePublisher{}
	svc := NewEventService(events, requests, pub, zerolog.Nop())
	return svc, events, requests, pub
}

func TestCreateEventDateValidation(t *testing.T) {
	svc, _, _, _ := newEventHarness()
	owner := testUser("owner")

	cases := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{"yesterday", time.Now().AddDate(0, 0, -1), ErrInvalidEventDate},
		{"today midnight", truncateToDay(time.Now()), ErrInvalidEventDate},
		{"today later", truncateToDay(time.Now()).Add(10 * time.Hour), nil},
		{"tomorrow", truncateToDay(time.Now()).AddDate(0, 0, 1), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := svc.CreateEvent(context.Background(), owner, CreateEventInput{
				Title:       "BBQ",
				Category:    "food",
				Description: "grill night",
				Date:        tc.date,
			})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, ev.ID)
			assert.Equal(t, owner.ID, ev.CreatedBy.ID)
		})
	}
}

func TestJoinEventRequestHappyPath(t *testing.T) {
	svc, _, _, pub := newEventHarness()
	owner := testUser("owner")
	joiner := testUser("joiner")

	ev, err := svc.CreateEvent(context.Background(), owner, CreateEventInput{
		Title: "Hike", Category: "outdoors", Description: "up the hill",
		Date: time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	require.NoError(t, svc.JoinEventRequest(context.Background(), joiner, ev.ID))

	pending, err := svc.ListPendingRequests(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, model.StatusPending, pending[0].Status)
	assert.Equal(t, joiner.ID, pending[0].User.ID)

	require.Len(t, pub.published, 1)
	assert.Equal(t, queue.SendJoinRequest, pub.published[0].pattern)
	payload := pub.published[0].payload.(queue.JoinRequestEvent)
	assert.Equal(t, owner.Email, payload.Email)
	assert.Equal(t, ev.Title, payload.EventTitle)
	assert.Equal(t, joiner.FullName, payload.RequesterName)
	assert.Equal(t, owner.FullName, payload.Name)
}

func TestJoinEventRequestMissingEvent(t *testing.T) {
	svc, _, _, _ := newEventHarness()
	err := svc.JoinEventRequest(context.Background(), testUser("joiner"), "nope")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestJoinEventRequestDuplicate(t *testing.T) {
	svc, _, _, _ := newEventHarness()
	owner := testUser("owner")
	joiner := testUser("joiner")

	ev, err := svc.CreateEvent(context.Background(), owner, CreateEventInput{
		Title: "Hike", Category: "outdoors", Description: "up the hill",
		Date: time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	require.NoError(t, svc.JoinEventRequest(context.Background(), joiner, ev.ID))
	err = svc.JoinEventRequest(context.Background(), joiner, ev.ID)
	assert.ErrorIs(t, err, ErrRequestExists)
}

func TestJoinEventRequestSelfJoin(t *testing.T) {
	svc, _, _, _ := newEventHarness()
	owner := testUser("owner")

	ev, err := svc.CreateEvent(context.Background(), owner, CreateEventInput{
		Title: "Hike", Category: "outdoors", Description: "up the hill",
		Date: time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	err = svc.JoinEventRequest(context.Background(), owner, ev.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

// The duplicate check runs before the self-join check: an owner who somehow
// already has a request on their own event sees the conflict, not the
// forbidden error.
func TestJoinEventRequestDuplicateBeforeSelfJoin(t *testing.T) {
	svc, _, requests, _ := newEventHarness()
	owner := testUser("owner")

	ev, err := svc.CreateEvent(context.Background(), owner, CreateEventInput{
		Title: "Hike", Category: "outdoors", Description: "up the hill",
		Date: time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	requests.requests["r1"] = &model.EventRequest{
		ID: "r1", Event: *ev, User: *owner, Status: model.StatusPending,
	}

	err = svc.JoinEventRequest(context.Background(), owner, ev.ID)
	assert.ErrorIs(t, err, ErrRequestExists)
}

// A concurrent insert that slips past the existence check surfaces as the
// same conflict once the unique key rejects it.
func TestJoinEventRequestInsertRace(t *testing.T) {
	svc, _, requests, _ := newEventHarness()
	owner := testUser("owner")
	joiner := testUser("joiner")

	ev, err := svc.CreateEvent(context.Background(), owner, CreateEventInput{
		Title: "Hike", Category: "outdoors", Description: "up the hill",
		Date: time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	requests.dupOnCreate = true
	err = svc.JoinEventRequest(context.Background(), joiner, ev.ID)
	assert.ErrorIs(t, err, ErrRequestExists)
}

func TestDecideRequest(t *testing.T) {
	svc, _, requests, pub := newEventHarness()
	owner := testUser("owner")
	joiner := testUser("joiner")

	ev, err := svc.CreateEvent(context.Background(), owner, CreateEventInput{
		Title: "Hike", Category: "outdoors", Description: "up the hill",
		Date: time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	require.NoError(t, svc.JoinEventRequest(context.Background(), joiner, ev.ID))

	pending, err := svc.ListPendingRequests(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	reqID := pending[0].ID

	t.Run("stranger cannot decide", func(t *testing.T) {
		_, err := svc.DecideRequest(context.Background(), testUser("stranger"), reqID, true)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner accepts", func(t *testing.T) {
		before := len(pub.published)
		msg, err := svc.DecideRequest(context.Background(), owner, reqID, true)
		require.NoError(t, err)
		assert.Equal(t, "Event request Accepted", msg)
		assert.Equal(t, model.StatusAccepted, requests.requests[reqID].Status)

		require.Equal(t, before+1, len(pub.published))
		last := pub.published[len(pub.published)-1]
		assert.Equal(t, queue.SendJoinRequestResponse, last.pattern)
		payload := last.payload.(queue.RequestDecisionEvent)
		assert.Equal(t, joiner.Email, payload.Email)
		assert.Equal(t, "Accepted", payload.Status)
	})

	t.Run("decision is one-way", func(t *testing.T) {
		_, err := svc.DecideRequest(context.Background(), owner, reqID, false)
		assert.ErrorIs(t, err, ErrRequestDecided)
		assert.Equal(t, model.StatusAccepted, requests.requests[reqID].Status)
	})

	t.Run("missing request", func(t *testing.T) {
		_, err := svc.DecideRequest(context.Background(), owner, "nope", true)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestDecideRequestReject(t *testing.T) {
	svc, _, requests, _ := newEventHarness()
	owner := testUser("owner")
	joiner := testUser("joiner")

	ev, err := svc.CreateEvent(context.Background(), owner, CreateEventInput{
		Title: "Hike", Category: "outdoors", Description: "up the hill",
		Date: time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	require.NoError(t, svc.JoinEventRequest(context.Background(), joiner, ev.ID))

	pending, err := svc.ListPendingRequests(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	msg, err := svc.DecideRequest(context.Background(), owner, pending[0].ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Event request Rejected", msg)
	assert.Equal(t, model.StatusRejected, requests.requests[pending[0].ID].Status)
}

// A publish failure never fails the request that triggered it.
func TestNotificationFailureIsSwallowed(t *testing.T) {
	events := newFakeEventRepo()
	requests := newFakeRequestRepo()
	pub := &fakePublisher{err: assert.AnError}
	svc := NewEventService(events, requests, pub, zerolog.Nop())

	owner := testUser("owner")
	joiner := testUser("joiner")

	ev, err := svc.CreateEvent(context.Background(), owner, CreateEventInput{
		Title: "Hike", Category: "outdoors", Description: "up the hill",
		Date: time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	assert.NoError(t, svc.JoinEventRequest(context.Background(), joiner, ev.ID))
}

func TestListEventsDefaultsAndMeta(t *testing.T) {
	svc, _, _, _ := newEventHarness()
	owner := testUser("owner")

	for i := 0; i < 5; i++ {
		_, err := svc.CreateEvent(context.Background(), owner, CreateEventInput{
			Title: "Event", Category: "misc", Description: "one of many",
			Date: time.Now().AddDate(0, 0, i+1),
		})
		require.NoError(t, err)
	}

	page, err := svc.ListEvents(context.Background(), EventQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Events, 2)
	assert.Equal(t, int64(5), page.Meta.ItemCount)
	assert.Equal(t, 3, page.Meta.PageCount)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Equal(t, 2, page.Meta.PageSize)

	// Zero values fall back to page 1, size 10.
	page, err = svc.ListEvents(context.Background(), EventQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Equal(t, 10, page.Meta.PageSize)
}
