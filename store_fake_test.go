package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory stand-in for the mongo adapters, injected
// into handlers the same way main injects the real one.
type fakeStore struct {
	users      map[primitive.ObjectID]User
	tasks      map[primitive.ObjectID]Task
	categories map[primitive.ObjectID]Category
	pingErr    error
}

func newFakeStore() (*fakeStore, *Store) {
	f := &fakeStore{
		users:      map[primitive.ObjectID]User{},
		tasks:      map[primitive.ObjectID]Task{},
		categories: map[primitive.ObjectID]Category{},
	}
	return f, &Store{
		Users:      &fakeUsers{f},
		Tasks:      &fakeTasks{f},
		Categories: &fakeCategories{f},
		Health:     f,
	}
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeStore) userRef(id primitive.ObjectID) *UserRef {
	if u, ok := f.users[id]; ok {
		return &UserRef{ID: u.ID, Name: u.Name}
	}
	return nil
}

func (f *fakeStore) categoryRef(id primitive.ObjectID) *CategoryRef {
	if cat, ok := f.categories[id]; ok {
		return &CategoryRef{ID: cat.ID, Name: cat.Name, Description: cat.Description}
	}
	return nil
}

func (f *fakeStore) taskView(t Task) TaskView {
	v := TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Owner != nil {
		v.Owner = f.userRef(*t.Owner)
	}
	if t.Category != nil {
		v.Category = f.categoryRef(*t.Category)
	}
	return v
}

func (f *fakeStore) categoryView(cat Category) CategoryView {
	v := CategoryView{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
	if cat.Owner != nil {
		v.Owner = f.userRef(*cat.Owner)
	}
	return v
}

type fakeUsers struct{ *fakeStore }

func (f *fakeUsers) All(ctx context.Context) ([]User, error) {
	out := []User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) ByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) ByName(ctx context.Context, name string) (*User, error) {
	for _, u := range f.users {
		if u.Name == name {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUsers) SearchByName(ctx context.Context, fragment string) ([]User, error) {
	out := []User{}
	needle := strings.ToLower(fragment)
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Name), needle) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Create(ctx context.Context, u *User) (primitive.ObjectID, error) {
	u.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.users[u.ID] = *u
	return u.ID, nil
}

func (f *fakeUsers) Update(ctx context.Context, id primitive.ObjectID, upd UserUpdate) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Name = upd.Name
	u.Password = upd.Password
	u.UpdatedAt = time.Now().UTC()
	f.users[id] = u
	return &u, nil
}

func (f *fakeUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUsers) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

type fakeTasks struct{ *fakeStore }

func (f *fakeTasks) All(ctx context.Context) ([]TaskView, error) {
	out := []TaskView{}
	for _, t := range f.tasks {
		out = append(out, f.taskView(t))
	}
	return out, nil
}

func (f *fakeTasks) ByID(ctx context.Context, id primitive.ObjectID) (*TaskView, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	v := f.taskView(t)
	return &v, nil
}

func (f *fakeTasks) ByOwner(ctx context.Context, owner primitive.ObjectID) ([]TaskView, error) {
	out := []TaskView{}
	for _, t := range f.tasks {
		if t.Owner != nil && *t.Owner == owner {
			out = append(out, f.taskView(t))
		}
	}
	return out, nil
}

func (f *fakeTasks) ByCategory(ctx context.Context, category primitive.ObjectID) ([]TaskView, error) {
	out := []TaskView{}
	for _, t := range f.tasks {
		if t.Category != nil && *t.Category == category {
			out = append(out, f.taskView(t))
		}
	}
	return out, nil
}

func (f *fakeTasks) Create(ctx context.Context, t *Task) (primitive.ObjectID, error) {
	t.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	f.tasks[t.ID] = *t
	return t.ID, nil
}

func (f *fakeTasks) Update(ctx context.Context, id primitive.ObjectID, patch TaskPatch) (*TaskView, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Owner != nil {
		t.Owner = patch.Owner
	}
	if patch.Category != nil {
		t.Category = patch.Category
	}
	t.UpdatedAt = time.Now().UTC()
	f.tasks[id] = t
	v := f.taskView(t)
	return &v, nil
}

func (f *fakeTasks) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

type fakeCategories struct{ *fakeStore }

func (f *fakeCategories) All(ctx context.Context) ([]CategoryView, error) {
	out := []CategoryView{}
	for _, cat := range f.categories {
		out = append(out, f.categoryView(cat))
	}
	return out, nil
}

func (f *fakeCategories) ByID(ctx context.Context, id primitive.ObjectID) (*CategoryView, error) {
	cat, ok := f.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	v := f.categoryView(cat)
	return &v, nil
}

func (f *fakeCategories) ByOwner(ctx context.Context, owner primitive.ObjectID) ([]CategoryView, error) {
	out := []CategoryView{}
	for _, cat := range f.categories {
		if cat.Owner != nil && *cat.Owner == owner {
			out = append(out, f.categoryView(cat))
		}
	}
	return out, nil
}

func (f *fakeCategories) Create(ctx context.Context, cat *Category) (primitive.ObjectID, error) {
	cat.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	cat.CreatedAt = now
	cat.UpdatedAt = now
	f.categories[cat.ID] = *cat
	return cat.ID, nil
}

func (f *fakeCategories) Update(ctx context.Context, id primitive.ObjectID, patch CategoryPatch) (*CategoryView, error) {
	cat, ok := f.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		cat.Name = *patch.Name
	}
	if patch.Description != nil {
		cat.Description = *patch.Description
	}
	if patch.Owner != nil {
		cat.Owner = patch.Owner
	}
	cat.UpdatedAt = time.Now().UTC()
	f.categories[id] = cat
	v := f.categoryView(cat)
	return &v, nil
}

func (f *fakeCategories) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.categories[id]; !ok {
		return ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategories) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := f.categories[id]
	return ok, nil
}

// newTestContext builds an Echo context with the store and config
// injected, mirroring the production middleware.
func newTestContext(t *testing.T, method, path, body string, st *Store, cfg Config) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("store", st)
	c.Set("config", cfg)
	return c, rec
}
