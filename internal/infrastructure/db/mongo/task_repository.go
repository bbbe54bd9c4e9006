package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

// taskDocument mirrors domain.Task with a native ObjectID key.
type taskDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Team             string             `bson:"team"`
	AssignedTo       string             `bson:"assignedTo,omitempty"`
	ClientID         string             `bson:"clientID"`
	Client           string             `bson:"client"`
	ActivityCode     string             `bson:"activityCode"`
	DeliveryDate     string             `bson:"deliveryDate"`
	Status           string             `bson:"status"`
	Remarks          string             `bson:"remarks"`
	SubmissionLink   string             `bson:"submissionLink"`
	Count            map[string]int     `bson:"count,omitempty"`
	Minutes          map[string]int     `bson:"minutes,omitempty"`
	Amount           map[string]int     `bson:"amount,omitempty"`
	Description      string             `bson:"description"`
	CallsDescription string             `bson:"callsDescription"`
}

func newTaskDocument(t *domain.Task) taskDocument {
	return taskDocument{
		Team:             t.Team,
		AssignedTo:       t.AssignedTo,
		ClientID:         t.ClientID,
		Client:           t.Client,
		ActivityCode:     t.ActivityCode,
		DeliveryDate:     t.DeliveryDate,
		Status:           t.Status,
		Remarks:          t.Remarks,
		SubmissionLink:   t.SubmissionLink,
		Count:            t.Count,
		Minutes:          t.Minutes,
		Amount:           t.Amount,
		Description:      t.Description,
		CallsDescription: t.CallsDescription,
	}
}

func (d taskDocument) toDomain() *domain.Task {
	return &domain.Task{
		ID:               d.ID.Hex(),
		Team:             d.Team,
		AssignedTo:       d.AssignedTo,
		ClientID:         d.ClientID,
		Client:           d.Client,
		ActivityCode:     d.ActivityCode,
		DeliveryDate:     d.DeliveryDate,
		Status:           d.Status,
		Remarks:          d.Remarks,
		SubmissionLink:   d.SubmissionLink,
		Count:            d.Count,
		Minutes:          d.Minutes,
		Amount:           d.Amount,
		Description:      d.Description,
		CallsDescription: d.CallsDescription,
	}
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) List(ctx context.Context, f domain.TaskFilter) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Team != "" {
		filter["team"] = f.Team
	}
	if f.AssignedTo != "" {
		filter["assignedTo"] = f.AssignedTo
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []taskDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Task, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Insert stores a new task and sets t.ID.
func (r *TaskRepository) Insert(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, newTaskDocument(t))
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return nil
}

// Update sets the patched fields and returns the task after the update.
func (r *TaskRepository) Update(ctx context.Context, id string, p domain.TaskPatch) (*domain.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if p.AssignedTo != nil {
		set["assignedTo"] = *p.AssignedTo
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Remarks != nil {
		set["remarks"] = *p.Remarks
	}
	if p.SubmissionLink != nil {
		set["submissionLink"] = *p.SubmissionLink
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

type teamTotalsRow struct {
	Team             string `bson:"_id"`
	TotalTasks       int    `bson:"totalTasks"`
	CompletedTasks   int    `bson:"completedTasks"`
	TotalMinutes     int    `bson:"totalMinutes"`
	CompletedMinutes int    `bson:"completedMinutes"`
}

// TeamTotals groups every task by team in a single aggregation.
func (r *TaskRepository) TeamTotals(ctx context.Context) ([]domain.TeamTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, teamTotalsPipeline())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []teamTotalsRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]domain.TeamTotals, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TeamTotals{
			Team:             row.Team,
			TotalTasks:       row.TotalTasks,
			CompletedTasks:   row.CompletedTasks,
			TotalMinutes:     row.TotalMinutes,
			CompletedMinutes: row.CompletedMinutes,
		})
	}
	return out, nil
}

func teamTotalsPipeline() mongo.Pipeline {
	completed := bson.M{"$in": bson.A{"$status", domain.CompletedStatuses}}
	minutes := bson.M{"$sum": bson.M{"$map": bson.M{
		"input": bson.M{"$objectToArray": bson.M{"$ifNull": bson.A{"$minutes", bson.M{}}}},
		"as":    "item",
		"in":    "$$item.v",
	}}}

	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$team"},
			{Key: "totalTasks", Value: bson.M{"$sum": 1}},
			{Key: "completedTasks", Value: bson.M{"$sum": bson.M{"$cond": bson.A{completed, 1, 0}}}},
			{Key: "totalMinutes", Value: bson.M{"$sum": minutes}},
			{Key: "completedMinutes", Value: bson.M{"$sum": bson.M{"$cond": bson.A{completed, minutes, 0}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "team", Value: 1}}},
		{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
		{Keys: bson.D{{Key: "clientID", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
