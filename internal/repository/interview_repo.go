package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mockview/internal/model"
)

type InterviewRepository interface {
	Create(ctx context.Context, interview *model.Interview) error
	GetByID(ctx context.Context, id string) (*model.Interview, error)
	List(ctx context.Context) ([]*model.Interview, error)
	AddSessionID(ctx context.Context, interviewID, sessionID string) error
	Delete(ctx context.Context, id string) error
}

type interviewRepository struct {
	collection *mongo.Collection
}

func NewInterviewRepository(client *mongo.Client, database string) InterviewRepository {
	db := client.Database(database)
	return &interviewRepository{
		collection: db.Collection("interviews"),
	}
}

func (r *interviewRepository) Create(ctx context.Context, interview *model.Interview) error {
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, interview)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		interview.ID = oid.Hex()
	}

	return nil
}

func (r *interviewRepository) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var interview model.Interview
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&interview)
	if err != nil {
		return nil, err
	}

	return &interview, nil
}

func (r *interviewRepository) List(ctx context.Context) ([]*model.Interview, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var interviews []*model.Interview
	if err = cursor.All(ctx, &interviews); err != nil {
		return nil, err
	}

	return interviews, nil
}

func (r *interviewRepository) AddSessionID(ctx context.Context, interviewID, sessionID string) error {
	oid, err := primitive.ObjectIDFromHex(interviewID)
	if err != nil {
		return err
	}

	update := bson.M{"$push": bson.M{"sessionIds": sessionID}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *interviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
