package main

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoStore holds the collection handles shared by the per-entity
// adapters.
type mongoStore struct {
	client     *mongo.Client
	users      *mongo.Collection
	tasks      *mongo.Collection
	categories *mongo.Collection
}

// NewMongoStore wires the per-entity adapters onto one database.
func NewMongoStore(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	ms := &mongoStore{
		client:     client,
		users:      db.Collection("users"),
		tasks:      db.Collection("tasks"),
		categories: db.Collection("categories"),
	}
	return &Store{
		Users:      &mongoUsers{ms},
		Tasks:      &mongoTasks{ms},
		Categories: &mongoCategories{ms},
		Health:     ms,
	}
}

func (m *mongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// userRefs fetches the {_id, name} projection of the given users in one
// query, keyed by id. Missing users are simply absent from the map.
func (m *mongoStore) userRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]UserRef, error) {
	refs := make(map[primitive.ObjectID]UserRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	cur, err := m.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		refs[d.ID] = UserRef{ID: d.ID, Name: d.Name}
	}
	return refs, nil
}

// categoryRefs is the category counterpart of userRefs, projecting
// {_id, name, description}.
func (m *mongoStore) categoryRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]CategoryRef, error) {
	refs := make(map[primitive.ObjectID]CategoryRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	cur, err := m.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "description": 1}))
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID          primitive.ObjectID `bson:"_id"`
		Name        string             `bson:"name"`
		Description string             `bson:"description"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		refs[d.ID] = CategoryRef{ID: d.ID, Name: d.Name, Description: d.Description}
	}
	return refs, nil
}

// taskViews populates the owner and category references of a batch of
// tasks. An unresolved reference (deleted user, orphan id) is rendered
// as null rather than failing the read.
func (m *mongoStore) taskViews(ctx context.Context, tasks []Task) ([]TaskView, error) {
	ownerIDs := make([]primitive.ObjectID, 0, len(tasks))
	catIDs := make([]primitive.ObjectID, 0, len(tasks))
	for _, t := range tasks {
		if t.Owner != nil {
			ownerIDs = append(ownerIDs, *t.Owner)
		}
		if t.Category != nil {
			catIDs = append(catIDs, *t.Category)
		}
	}
	owners, err := m.userRefs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	cats, err := m.categoryRefs(ctx, catIDs)
	if err != nil {
		return nil, err
	}
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		v := TaskView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
		if t.Owner != nil {
			if ref, ok := owners[*t.Owner]; ok {
				v.Owner = &ref
			}
		}
		if t.Category != nil {
			if ref, ok := cats[*t.Category]; ok {
				v.Category = &ref
			}
		}
		views = append(views, v)
	}
	return views, nil
}

func (m *mongoStore) categoryViews(ctx context.Context, cats []Category) ([]CategoryView, error) {
	ownerIDs := make([]primitive.ObjectID, 0, len(cats))
	for _, cat := range cats {
		if cat.Owner != nil {
			ownerIDs = append(ownerIDs, *cat.Owner)
		}
	}
	owners, err := m.userRefs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	views := make([]CategoryView, 0, len(cats))
	for _, cat := range cats {
		v := CategoryView{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			CreatedAt:   cat.CreatedAt,
			UpdatedAt:   cat.UpdatedAt,
		}
		if cat.Owner != nil {
			if ref, ok := owners[*cat.Owner]; ok {
				v.Owner = &ref
			}
		}
		views = append(views, v)
	}
	return views, nil
}

type mongoUsers struct{ *mongoStore }

func (m *mongoUsers) All(ctx context.Context) ([]User, error) {
	cur, err := m.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	out := []User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *mongoUsers) ByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var u User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *mongoUsers) ByName(ctx context.Context, name string) (*User, error) {
	var u User
	err := m.users.FindOne(ctx, bson.M{"name": name}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *mongoUsers) SearchByName(ctx context.Context, fragment string) ([]User, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(fragment), Options: "i"}}
	cur, err := m.users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *mongoUsers) Create(ctx context.Context, u *User) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := m.users.InsertOne(ctx, u)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (m *mongoUsers) Update(ctx context.Context, id primitive.ObjectID, upd UserUpdate) (*User, error) {
	set := bson.M{
		"name":      upd.Name,
		"password":  upd.Password,
		"updatedAt": time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u User
	err := m.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *mongoUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoUsers) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := m.users.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type mongoTasks struct{ *mongoStore }

func (m *mongoTasks) find(ctx context.Context, filter bson.M) ([]TaskView, error) {
	cur, err := m.tasks.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var tasks []Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return m.taskViews(ctx, tasks)
}

func (m *mongoTasks) All(ctx context.Context) ([]TaskView, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoTasks) ByID(ctx context.Context, id primitive.ObjectID) (*TaskView, error) {
	var t Task
	err := m.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	views, err := m.taskViews(ctx, []Task{t})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (m *mongoTasks) ByOwner(ctx context.Context, owner primitive.ObjectID) ([]TaskView, error) {
	return m.find(ctx, bson.M{"owner": owner})
}

func (m *mongoTasks) ByCategory(ctx context.Context, category primitive.ObjectID) ([]TaskView, error) {
	return m.find(ctx, bson.M{"category": category})
}

func (m *mongoTasks) Create(ctx context.Context, t *Task) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	res, err := m.tasks.InsertOne(ctx, t)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (m *mongoTasks) Update(ctx context.Context, id primitive.ObjectID, patch TaskPatch) (*TaskView, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if patch.Owner != nil {
		set["owner"] = *patch.Owner
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t Task
	err := m.tasks.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	views, err := m.taskViews(ctx, []Task{t})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (m *mongoTasks) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.tasks.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoCategories struct{ *mongoStore }

func (m *mongoCategories) find(ctx context.Context, filter bson.M) ([]CategoryView, error) {
	cur, err := m.categories.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var cats []Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return m.categoryViews(ctx, cats)
}

func (m *mongoCategories) All(ctx context.Context) ([]CategoryView, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoCategories) ByID(ctx context.Context, id primitive.ObjectID) (*CategoryView, error) {
	var cat Category
	err := m.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	views, err := m.categoryViews(ctx, []Category{cat})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (m *mongoCategories) ByOwner(ctx context.Context, owner primitive.ObjectID) ([]CategoryView, error) {
	return m.find(ctx, bson.M{"owner": owner})
}

func (m *mongoCategories) Create(ctx context.Context, cat *Category) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	cat.CreatedAt = now
	cat.UpdatedAt = now
	res, err := m.categories.InsertOne(ctx, cat)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (m *mongoCategories) Update(ctx context.Context, id primitive.ObjectID, patch CategoryPatch) (*CategoryView, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Owner != nil {
		set["owner"] = *patch.Owner
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cat Category
	err := m.categories.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	views, err := m.categoryViews(ctx, []Category{cat})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (m *mongoCategories) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoCategories) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := m.categories.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
