package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/geocoder"
	"github.com/oksasatya/go-bootcamp-directory/pkg/mailer"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
)

// memDB backs every fake repository so tests can inspect cross-entity effects.
type memDB struct {
	mu        sync.Mutex
	seq       int
	users     map[string]*entity.User
	bootcamps map[string]*entity.Bootcamp
	courses   map[string]*entity.Course
	reviews   map[string]*entity.Review
	log       []string
	fail      map[string]error
}

func newMemDB() *memDB {
	return &memDB{
		users:     map[string]*entity.User{},
		bootcamps: map[string]*entity.Bootcamp{},
		courses:   map[string]*entity.Course{},
		reviews:   map[string]*entity.Review{},
		fail:      map[string]error{},
	}
}

func (db *memDB) nextID(prefix string) string {
	db.seq++
	return fmt.Sprintf("%s-%d", prefix, db.seq)
}

func (db *memDB) record(op string) error {
	db.log = append(db.log, op)
	return db.fail[op]
}

type fakeUsers struct{ db *memDB }

func (f fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.record("users.create"); err != nil {
		return err
	}
	for _, x := range f.db.users {
		if x.Email == u.Email {
			return apperror.Duplicate(errors.New("users_email_key"))
		}
	}
	u.ID = f.db.nextID("user")
	u.CreatedAt = time.Now()
	cp := *u
	f.db.users[u.ID] = &cp
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	u, ok := f.db.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f fakeUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, u := range f.db.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Email == email })
}

func (f fakeUsers) GetByResetToken(_ context.Context, hash string, now time.Time) (*entity.User, error) {
	return f.find(func(u *entity.User) bool {
		return u.ResetPasswordToken != nil && *u.ResetPasswordToken == hash &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now)
	})
}

func (f fakeUsers) GetByConfirmToken(_ context.Context, hash string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool {
		return u.ConfirmEmailToken != nil && *u.ConfirmEmailToken == hash && !u.IsEmailConfirmed
	})
}

func (f fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.record("users.update"); err != nil {
		return err
	}
	if _, ok := f.db.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	f.db.users[u.ID] = &cp
	return nil
}

func (f fakeUsers) Delete(_ context.Context, id string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.record("users.delete"); err != nil {
		return err
	}
	if _, ok := f.db.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.db.users, id)
	return nil
}

type fakeBootcamps struct{ db *memDB }

func (f fakeBootcamps) Create(_ context.Context, b *entity.Bootcamp) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.record("bootcamps.create"); err != nil {
		return err
	}
	b.ID = f.db.nextID("bootcamp")
	b.CreatedAt = time.Now()
	cp := *b
	f.db.bootcamps[b.ID] = &cp
	return nil
}

func (f fakeBootcamps) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	b, ok := f.db.bootcamps[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f fakeBootcamps) CountByUser(_ context.Context, userID string) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var n int64
	for _, b := range f.db.bootcamps {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f fakeBootcamps) Update(_ context.Context, b *entity.Bootcamp) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.record("bootcamps.update"); err != nil {
		return err
	}
	cp := *b
	f.db.bootcamps[b.ID] = &cp
	return nil
}

func (f fakeBootcamps) Delete(_ context.Context, id string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.record("bootcamps.delete"); err != nil {
		return err
	}
	delete(f.db.bootcamps, id)
	return nil
}

func (f fakeBootcamps) UpdatePhoto(_ context.Context, id, photo string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.bootcamps[id].Photo = photo
	return nil
}

func (f fakeBootcamps) SetAverageCost(_ context.Context, id string, v *float64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.record("bootcamps.averageCost"); err != nil {
		return err
	}
	f.db.bootcamps[id].AverageCost = v
	return nil
}

func (f fakeBootcamps) SetAverageRating(_ context.Context, id string, v *float64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.record("bootcamps.averageRating"); err != nil {
		return err
	}
	f.db.bootcamps[id].AverageRating = v
	return nil
}

func (f fakeBootcamps) WithinRadius(_ context.Context, lat, lng, radius float64) ([]entity.Bootcamp, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.log = append(f.db.log, fmt.Sprintf("radius %.4f %.4f %.6f", lat, lng, radius))
	var out []entity.Bootcamp
	for _, b := range f.db.bootcamps {
		out = append(out, *b)
	}
	return out, nil
}

type fakeCourses struct{ db *memDB }

func (f fakeCourses) Create(_ context.Context, c *entity.Course) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c.ID = f.db.nextID("course")
	cp := *c
	f.db.courses[c.ID] = &cp
	return nil
}

func (f fakeCourses) GetByID(_ context.Context, id string) (*entity.Course, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c, ok := f.db.courses[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeCourses) Update(_ context.Context, c *entity.Course) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	cp := *c
	f.db.courses[c.ID] = &cp
	return nil
}

func (f fakeCourses) Delete(_ context.Context, id string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.courses, id)
	return nil
}

func (f fakeCourses) ListByBootcamp(_ context.Context, bootcampID string) ([]entity.Course, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []entity.Course
	for _, c := range f.db.courses {
		if c.BootcampID == bootcampID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeCourses) DeleteByBootcamp(_ context.Context, bootcampID string) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.record("courses.deleteByBootcamp"); err != nil {
		return 0, err
	}
	var n int64
	for id, c := range f.db.courses {
		if c.BootcampID == bootcampID {
			delete(f.db.courses, id)
			n++
		}
	}
	return n, nil
}

func (f fakeCourses) AverageTuition(_ context.Context, bootcampID string) (float64, int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.fail["courses.average"]; err != nil {
		return 0, 0, err
	}
	var sum float64
	var n int64
	for _, c := range f.db.courses {
		if c.BootcampID == bootcampID {
			sum += c.Tuition
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return sum / float64(n), n, nil
}

type fakeReviews struct{ db *memDB }

func (f fakeReviews) Create(_ context.Context, r *entity.Review) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, x := range f.db.reviews {
		if x.BootcampID == r.BootcampID && x.UserID == r.UserID {
			return apperror.Duplicate(errors.New("reviews_bootcamp_user_key"))
		}
	}
	r.ID = f.db.nextID("review")
	cp := *r
	f.db.reviews[r.ID] = &cp
	return nil
}

func (f fakeReviews) GetByID(_ context.Context, id string) (*entity.Review, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	r, ok := f.db.reviews[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f fakeReviews) Update(_ context.Context, r *entity.Review) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	cp := *r
	f.db.reviews[r.ID] = &cp
	return nil
}

func (f fakeReviews) Delete(_ context.Context, id string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.reviews, id)
	return nil
}

func (f fakeReviews) ListByBootcamp(_ context.Context, bootcampID string) ([]entity.Review, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []entity.Review
	for _, r := range f.db.reviews {
		if r.BootcampID == bootcampID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f fakeReviews) DeleteByBootcamp(_ context.Context, bootcampID string) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.db.record("reviews.deleteByBootcamp"); err != nil {
		return 0, err
	}
	var n int64
	for id, r := range f.db.reviews {
		if r.BootcampID == bootcampID {
			delete(f.db.reviews, id)
			n++
		}
	}
	return n, nil
}

func (f fakeReviews) AverageRating(_ context.Context, bootcampID string) (float64, int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var sum float64
	var n int64
	for _, r := range f.db.reviews {
		if r.BootcampID == bootcampID {
			sum += float64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return sum / float64(n), n, nil
}

// fakeTx runs fn directly and records the boundary.
type fakeTx struct{ db *memDB }

func (t fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.db.mu.Lock()
	t.db.log = append(t.db.log, "tx.begin")
	t.db.mu.Unlock()
	err := fn(ctx)
	t.db.mu.Lock()
	if err != nil {
		t.db.log = append(t.db.log, "tx.rollback")
	} else {
		t.db.log = append(t.db.log, "tx.commit")
	}
	t.db.mu.Unlock()
	return err
}

type finderCall struct {
	Resource string
	ID       string
	Spec     query.Spec
	Populate []query.Populate
}

type fakeFinder struct {
	calls  []finderCall
	result query.Result
	record map[string]any
	err    error
}

func (f *fakeFinder) Find(_ context.Context, resource string, spec query.Spec, populate ...query.Populate) (query.Result, error) {
	f.calls = append(f.calls, finderCall{Resource: resource, Spec: spec, Populate: populate})
	return f.result, f.err
}

func (f *fakeFinder) FindOne(_ context.Context, resource, id string, populate ...query.Populate) (map[string]any, error) {
	f.calls = append(f.calls, finderCall{Resource: resource, ID: id, Populate: populate})
	if f.err != nil {
		return nil, f.err
	}
	if f.record == nil {
		return nil, repo.ErrNotFound
	}
	return f.record, nil
}

type fakeGeocoder struct {
	result geocoder.Result
	err    error
	calls  []string
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (geocoder.Result, error) {
	g.calls = append(g.calls, address)
	return g.result, g.err
}

type fakeFiles struct {
	names []string
	body  []byte
	err   error
}

func (f *fakeFiles) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.names = append(f.names, name)
	f.body, _ = io.ReadAll(r)
	return nil
}

type fakeSearch struct {
	put     []string
	removed []string
	hits    []map[string]any
	err     error
}

func (s *fakeSearch) Put(_ context.Context, b *entity.Bootcamp) { s.put = append(s.put, b.ID) }
func (s *fakeSearch) Remove(_ context.Context, id string)      { s.removed = append(s.removed, id) }
func (s *fakeSearch) Search(_ context.Context, _ string, _ int) ([]map[string]any, error) {
	return s.hits, s.err
}

type fakeSender struct {
	sent []mailer.Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fakeCodes struct {
	codes map[string]string
	ttl   time.Duration
}

func (c *fakeCodes) Save(_ context.Context, userID, hash string, ttl time.Duration) error {
	if c.codes == nil {
		c.codes = map[string]string{}
	}
	c.codes[userID] = hash
	c.ttl = ttl
	return nil
}

func (c *fakeCodes) Get(_ context.Context, userID string) (string, bool, error) {
	v, ok := c.codes[userID]
	return v, ok, nil
}

func (c *fakeCodes) Delete(_ context.Context, userID string) error {
	delete(c.codes, userID)
	return nil
}

func f64(v float64) *float64 { return &v }
func str(v string) *string    { return &v }
