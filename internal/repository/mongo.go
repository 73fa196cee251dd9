package repository

import (
	"context"
	"time"

	"fleet-docs-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoOpTimeout = 10 * time.Second

// MongoStore persists vehicles (with their documents embedded) and history
// entries in MongoDB. Each mutation and its history entries are written in
// one transaction, so the deployment must be a replica set.
type MongoStore struct {
	client   *mongo.Client
	vehicles *mongo.Collection
	history  *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		client:   db.Client(),
		vehicles: db.Collection("vehicles"),
		history:  db.Collection("history_logs"),
	}
}

func (s *MongoStore) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.vehicles.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}
	return vehicles, cursor.Err()
}

func (s *MongoStore) FindVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var vehicle models.Vehicle
	err = s.vehicles.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (s *MongoStore) CreateVehicle(ctx context.Context, v *models.Vehicle, logs []models.HistoryLog) error {
	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := s.vehicles.InsertOne(sc, v); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicatePlate
			}
			return err
		}
		return s.insertHistory(sc, logs)
	})
}

func (s *MongoStore) UpdateVehicle(ctx context.Context, v *models.Vehicle, logs []models.HistoryLog) error {
	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		result, err := s.vehicles.ReplaceOne(sc, bson.M{"_id": v.ID}, v)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicatePlate
			}
			return err
		}
		if result.MatchedCount == 0 {
			return ErrNotFound
		}
		return s.insertHistory(sc, logs)
	})
}

func (s *MongoStore) DeleteVehicle(ctx context.Context, id string, logs []models.HistoryLog) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		// Documents are embedded in the vehicle, so deleting the vehicle
		// deletes them with it.
		result, err := s.vehicles.DeleteOne(sc, bson.M{"_id": objectID})
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return ErrNotFound
		}
		return s.insertHistory(sc, logs)
	})
}

func (s *MongoStore) CreateDocument(ctx context.Context, vehicleID string, d *models.Document, logs []models.HistoryLog) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, ErrNotFound
	}

	var vehicle models.Vehicle
	err = s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		update := bson.M{
			"$push": bson.M{"documents": d},
			"$set":  bson.M{"updated_at": time.Now()},
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := s.vehicles.FindOneAndUpdate(sc, bson.M{"_id": objectID}, update, opts).Decode(&vehicle)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return err
		}
		return s.insertHistory(sc, logs)
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *MongoStore) UpdateDocument(ctx context.Context, vehicleID string, d *models.Document, logs []models.HistoryLog) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, ErrNotFound
	}

	var vehicle models.Vehicle
	err = s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"_id": objectID, "documents._id": d.ID}
		update := bson.M{
			"$set": bson.M{
				"documents.$": d,
				"updated_at":  time.Now(),
			},
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := s.vehicles.FindOneAndUpdate(sc, filter, update, opts).Decode(&vehicle)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return err
		}
		return s.insertHistory(sc, logs)
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *MongoStore) DeleteDocument(ctx context.Context, vehicleID, documentID string, logs []models.HistoryLog) (*models.Vehicle, error) {
	vehicleOID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, ErrNotFound
	}
	documentOID, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return nil, ErrNotFound
	}

	var vehicle models.Vehicle
	err = s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"_id": vehicleOID, "documents._id": documentOID}
		update := bson.M{
			"$pull": bson.M{"documents": bson.M{"_id": documentOID}},
			"$set":  bson.M{"updated_at": time.Now()},
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := s.vehicles.FindOneAndUpdate(sc, filter, update, opts).Decode(&vehicle)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return err
		}
		return s.insertHistory(sc, logs)
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *MongoStore) ListHistory(ctx context.Context, limit int) ([]*models.HistoryLog, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := s.history.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*models.HistoryLog
	for cursor.Next(ctx) {
		var entry models.HistoryLog
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		logs = append(logs, &entry)
	}
	return logs, cursor.Err()
}

func (s *MongoStore) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *MongoStore) insertHistory(ctx context.Context, logs []models.HistoryLog) error {
	if len(logs) == 0 {
		return nil
	}
	entries := make([]interface{}, 0, len(logs))
	for i := range logs {
		entries = append(entries, logs[i])
	}
	_, err := s.history.InsertMany(ctx, entries)
	return err
}
