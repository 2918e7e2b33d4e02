package store

import (
	"context"
	"errors"

	"postflow/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore 托管文档库实现，交互式登录会话使用
type MongoStore struct {
	users       *mongo.Collection
	profiles    *mongo.Collection
	posts       *mongo.Collection
	connections *mongo.Collection
	notifier    Notifier
}

func NewMongoStore(db *mongo.Database, notifier Notifier) *MongoStore {
	return &MongoStore{
		users:       db.Collection("users"),
		profiles:    db.Collection("profiles"),
		posts:       db.Collection("posts"),
		connections: db.Collection("connections"),
		notifier:    notifier,
	}
}

var _ Store = (*MongoStore)(nil)

func (s *MongoStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) SaveUser(ctx context.Context, user *model.User) error {
	_, err := s.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user,
		options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	s.notifier.Publish(ctx, user.ID)
	return nil
}

func (s *MongoStore) GetProfile(ctx context.Context, ownerID string) (*model.CompanyProfile, error) {
	var profile model.CompanyProfile
	err := s.profiles.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *MongoStore) SaveProfile(ctx context.Context, profile *model.CompanyProfile) error {
	_, err := s.profiles.ReplaceOne(ctx, bson.M{"owner_id": profile.OwnerID}, profile,
		options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	s.notifier.Publish(ctx, profile.OwnerID)
	return nil
}

func (s *MongoStore) ListPosts(ctx context.Context, ownerID string) ([]*model.Post, error) {
	// 新帖在前
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.posts.Find(ctx, bson.M{"owner_id": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoStore) GetPost(ctx context.Context, ownerID string, id string) (*model.Post, error) {
	var post model.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoStore) SavePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	finalizeNew(post)
	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, post.OwnerID)
	return post, nil
}

func (s *MongoStore) UpdatePost(ctx context.Context, post *model.Post) error {
	res, err := s.posts.ReplaceOne(ctx, bson.M{"_id": post.ID, "owner_id": post.OwnerID}, post)
	if err != nil {
		return err
	}
	// 未知 ID 视为空操作
	if res.MatchedCount == 0 {
		return nil
	}
	s.notifier.Publish(ctx, post.OwnerID)
	return nil
}

func (s *MongoStore) DeletePost(ctx context.Context, ownerID string, id string) error {
	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return nil
	}
	s.notifier.Publish(ctx, ownerID)
	return nil
}

func (s *MongoStore) GetConnection(ctx context.Context, ownerID string, platform model.Platform) (*model.Connection, error) {
	var conn connectionDoc
	err := s.connections.FindOne(ctx, bson.M{"owner_id": ownerID, "platform": platform}).Decode(&conn)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return conn.Connection, nil
}

func (s *MongoStore) ListConnections(ctx context.Context, ownerID string) ([]*model.Connection, error) {
	cursor, err := s.connections.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []*connectionDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	conns := make([]*model.Connection, 0, len(docs))
	for _, d := range docs {
		conns = append(conns, d.Connection)
	}
	return conns, nil
}

func (s *MongoStore) SaveConnection(ctx context.Context, ownerID string, conn *model.Connection) error {
	doc := &connectionDoc{OwnerID: ownerID, Connection: conn}
	_, err := s.connections.ReplaceOne(ctx,
		bson.M{"owner_id": ownerID, "platform": conn.Platform}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	s.notifier.Publish(ctx, ownerID)
	return nil
}

func (s *MongoStore) SeedIfEmpty(ctx context.Context, ownerID string) error {
	profile, err := s.GetProfile(ctx, ownerID)
	if err != nil {
		return err
	}
	count, err := s.posts.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return err
	}
	if profile != nil || count > 0 {
		return nil
	}

	var data ownerData
	seedOwnerData(&data, ownerID)
	if err = s.SaveProfile(ctx, data.Profile); err != nil {
		return err
	}
	for _, post := range data.Posts {
		if _, err = s.posts.InsertOne(ctx, post); err != nil {
			return err
		}
	}
	s.notifier.Publish(ctx, ownerID)
	return nil
}

// connectionDoc 连接记录的文档形态，补上归属字段
type connectionDoc struct {
	OwnerID           string `bson:"owner_id"`
	*model.Connection `bson:",inline"`
}
