package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"holomeet/internal/model"
)

// ArchiveRepo handles MongoDB operations for meeting records
type ArchiveRepo interface {
	Save(ctx context.Context, record *model.MeetingRecord) error
	ListByRoom(ctx context.Context, roomKey string) ([]model.ArchiveHandle, error)
	GetByHandle(ctx context.Context, handle string) (*model.MeetingRecord, error)
}

type archiveRepo struct {
	collection *mongo.Collection
}

// NewArchiveRepo creates a new archive repository
func NewArchiveRepo(db *mongo.Database) ArchiveRepo {
	return &archiveRepo{
		collection: db.Collection("meeting_records"),
	}
}

func (r *archiveRepo) Save(ctx context.Context, record *model.MeetingRecord) error {
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *archiveRepo) ListByRoom(ctx context.Context, roomKey string) ([]model.ArchiveHandle, error) {
	opts := options.Find().
		SetProjection(bson.M{"handle": 1, "roomKey": 1, "endedAt": 1}).
		SetSort(bson.M{"endedAt": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"roomKey": roomKey}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	handles := []model.ArchiveHandle{}
	if err := cursor.All(ctx, &handles); err != nil {
		return nil, err
	}
	return handles, nil
}

func (r *archiveRepo) GetByHandle(ctx context.Context, handle string) (*model.MeetingRecord, error) {
	var record model.MeetingRecord
	err := r.collection.FindOne(ctx, bson.M{"handle": handle}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
