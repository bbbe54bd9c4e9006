package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

const employeeCollection = "users"

type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(employeeCollection)}
}

type mongoEmployee struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	EmpID          string             `bson:"empID"`
	Name           string             `bson:"name"`
	Role           string             `bson:"role"`
	Team           string             `bson:"team,omitempty"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"hashed_password"`
	IsAdmin        bool               `bson:"is_admin"`
}

func (m mongoEmployee) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:           m.ID.Hex(),
		EmpID:        m.EmpID,
		Name:         m.Name,
		Role:         m.Role,
		Team:         m.Team,
		Email:        m.Email,
		PasswordHash: m.HashedPassword,
		IsAdmin:      m.IsAdmin,
	}
}

// Create inserts a new employee. empID and email must both be unused.
func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	taken := bson.M{"$or": bson.A{bson.M{"empID": e.EmpID}, bson.M{"email": e.Email}}}
	n, err := r.coll.CountDocuments(ctx, taken, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("check employee: %w", err)
	}
	if n > 0 {
		return nil, domain.ErrEmployeeExists
	}

	doc := mongoEmployee{
		EmpID:          e.EmpID,
		Name:           e.Name,
		Role:           e.Role,
		Team:           e.Team,
		Email:          e.Email,
		HashedPassword: e.PasswordHash,
		IsAdmin:        e.IsAdmin,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmployeeExists
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *EmployeeRepository) findOne(ctx context.Context, filter bson.M) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEmployee
	if err := r.coll.FindOne(ctx, filter).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *EmployeeRepository) FindByEmpID(ctx context.Context, empID string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"empID": empID})
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *EmployeeRepository) List(ctx context.Context, team string) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if team != "" {
		filter["team"] = team
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "empID", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoEmployee
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	out := make([]*domain.Employee, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Update sets the given fields and returns the stored employee.
func (r *EmployeeRepository) Update(ctx context.Context, id string, upd ports.EmployeeUpdate) (*domain.Employee, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.EmpID != nil {
		set["empID"] = *upd.EmpID
	}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.Team != nil {
		set["team"] = *upd.Team
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.IsAdmin != nil {
		set["is_admin"] = *upd.IsAdmin
	}
	if upd.PasswordHash != nil {
		set["hashed_password"] = *upd.PasswordHash
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var me mongoEmployee
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmployeeExists
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// EnsureIndexes makes empID and email unique.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "empID", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "team", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
