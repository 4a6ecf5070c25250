// Package causestore persists fundraising causes. The raised amount is
// only ever changed through the guarded increment and decrement here,
// which keeps raised <= goal under concurrent donations.
package causestore

import (
	"context"
	"time"

	"github.com/hopecharity/hopehub/internal/app/system/query"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("causes")}
}

// Create inserts a new cause. The raised amount always starts at zero
// regardless of what the caller supplies.
func (s *Store) Create(ctx context.Context, c models.Cause) (models.Cause, error) {
	c.ID = primitive.NewObjectID()
	c.RaisedAmount = 0

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Cause{}, err
	}
	return c, nil
}

// GetByID loads a cause by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cause, error) {
	var c models.Cause
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// lookupCreator joins the admin profile behind createdBy. The join
// lands under "creator" so the raw createdBy id survives alongside it.
func lookupCreator() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "admins",
			"localField":   "createdBy",
			"foreignField": "_id",
			"as":           "creator",
		}},
		{"$unwind": bson.M{
			"path":                       "$creator",
			"preserveNullAndEmptyArrays": true,
		}},
	}
}

// GetPopulated loads a cause with its creating admin profile joined in.
func (s *Store) GetPopulated(ctx context.Context, id primitive.ObjectID) (*models.PopulatedCause, error) {
	pipeline := append([]bson.M{{"$match": bson.M{"_id": id}}}, lookupCreator()...)
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, err
		}
		return nil, mongo.ErrNoDocuments
	}
	var pc models.PopulatedCause
	if err := cur.Decode(&pc); err != nil {
		return nil, err
	}
	return &pc, nil
}

// Update holds the cause fields callers may change. Nil pointers leave
// the stored value untouched.
type Update struct {
	Title       *string
	Description *string
	Image       *string
	GoalAmount  *float64
}

// UpdateFields applies upd to one cause. When the goal is being
// lowered, the filter refuses to take it below the raised amount, so a
// zero matched count on an existing cause means the new goal was too
// low. Returns the matched count.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) (int64, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}

	filter := bson.M{"_id": id}
	if upd.GoalAmount != nil {
		set["goalAmount"] = *upd.GoalAmount
		filter["raisedAmount"] = bson.M{"$lte": *upd.GoalAmount}
	}

	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// IncRaised adds amount to the raised total, but only if doing so keeps
// it within the goal. Returns the matched count; 0 means either the
// cause is gone or the donation would overshoot the goal.
func (s *Store) IncRaised(ctx context.Context, id primitive.ObjectID, amount float64) (int64, error) {
	filter := bson.M{
		"_id": id,
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$add": bson.A{"$raisedAmount", amount}},
			"$goalAmount",
		}},
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"raisedAmount": amount},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DecRaised subtracts amount from the raised total when a donation is
// removed. Returns the matched count.
func (s *Store) DecRaised(ctx context.Context, id primitive.ObjectID, amount float64) (int64, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"raisedAmount": -amount},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Delete removes a cause by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListPopulated returns a page of causes with creators joined in.
func (s *Store) ListPopulated(ctx context.Context, cl query.Clauses) ([]models.PopulatedCause, error) {
	pipeline := []bson.M{{"$match": cl.Where}}
	if len(cl.Sort) > 0 {
		pipeline = append(pipeline, bson.M{"$sort": cl.Sort})
	}
	pipeline = append(pipeline, bson.M{"$skip": cl.Skip}, bson.M{"$limit": cl.Limit})
	pipeline = append(pipeline, lookupCreator()...)
	if len(cl.Projection) > 0 {
		pipeline = append(pipeline, bson.M{"$project": cl.Projection})
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	causes := []models.PopulatedCause{}
	if err := cur.All(ctx, &causes); err != nil {
		return nil, err
	}
	return causes, nil
}

// Count returns the total documents matching where.
func (s *Store) Count(ctx context.Context, where bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, where)
}
