package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

const collectionClients = "clients"

// ClientRepository implements ports.ClientRepository using MongoDB. Service
// slots are stored as top-level sub-documents named after the catalogue
// entry ("Web", "SEO", ...).
type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

type clientDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ClientID      string             `bson:"clientID"`
	ClientName    string             `bson:"clientName"`
	Industry      string             `bson:"industry"`
	DeliveryDate  string             `bson:"deliveryDate"`
	Phone         string             `bson:"phone"`
	Email         string             `bson:"email"`
	TotalAmount   int                `bson:"totalAmount"`
	IsArchived    bool               `bson:"isArchived"`
	ActivityCodes map[string]string  `bson:"activityCodes,omitempty"`
}

// slotDocument accepts the legacy "amo" key on read, used when "amount" is
// missing or zero. Writes always use "amount".
type slotDocument struct {
	Count       int    `bson:"count"`
	Amount      *int   `bson:"amount,omitempty"`
	Amo         *int   `bson:"amo,omitempty"`
	Min         int    `bson:"min"`
	Description string `bson:"description"`
}

func (s slotDocument) toDomain() domain.ServiceSlot {
	out := domain.ServiceSlot{Count: s.Count, Min: s.Min, Description: s.Description}
	if s.Amount != nil {
		out.Amount = *s.Amount
	}
	if out.Amount == 0 && s.Amo != nil {
		out.Amount = *s.Amo
	}
	return out
}

func clientToBSON(c *domain.Client) bson.D {
	doc := bson.D{
		{Key: "clientID", Value: c.ClientID},
		{Key: "clientName", Value: c.ClientName},
		{Key: "industry", Value: c.Industry},
		{Key: "deliveryDate", Value: c.DeliveryDate},
		{Key: "phone", Value: c.Phone},
		{Key: "email", Value: c.Email},
		{Key: "totalAmount", Value: c.TotalAmount},
		{Key: "isArchived", Value: c.IsArchived},
	}
	if len(c.ActivityCodes) > 0 {
		doc = append(doc, bson.E{Key: "activityCodes", Value: c.ActivityCodes})
	}
	for _, def := range domain.Services {
		s, ok := c.Slot(def.Name)
		if !ok {
			continue
		}
		amount := s.Amount
		doc = append(doc, bson.E{Key: def.Name, Value: slotDocument{
			Count:       s.Count,
			Amount:      &amount,
			Min:         s.Min,
			Description: s.Description,
		}})
	}
	return doc
}

func clientFromRaw(raw bson.Raw) (*domain.Client, error) {
	var doc clientDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode client: %w", err)
	}

	c := &domain.Client{
		ID:            doc.ID.Hex(),
		ClientID:      doc.ClientID,
		ClientName:    doc.ClientName,
		Industry:      doc.Industry,
		DeliveryDate:  doc.DeliveryDate,
		Phone:         doc.Phone,
		Email:         doc.Email,
		TotalAmount:   doc.TotalAmount,
		IsArchived:    doc.IsArchived,
		ActivityCodes: doc.ActivityCodes,
	}
	for _, def := range domain.Services {
		val, err := raw.LookupErr(def.Name)
		if err != nil || val.Type != bsontype.EmbeddedDocument {
			continue
		}
		var s slotDocument
		if err := val.Unmarshal(&s); err != nil {
			return nil, fmt.Errorf("decode client slot %s: %w", def.Name, err)
		}
		c.SetSlot(def.Name, s.toDomain())
	}
	return c, nil
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.col.FindOne(ctx, filter, opts...).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return clientFromRaw(raw)
}

// FindActiveByIdentity returns the non-archived client with the exact name
// and phone.
func (r *ClientRepository) FindActiveByIdentity(ctx context.Context, clientName, phone string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{
		"clientName": clientName,
		"phone":      phone,
		"isArchived": false,
	})
}

// LastClientID returns the lexicographically greatest clientID, or "" when
// the collection is empty.
func (r *ClientRepository) LastClientID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().
		SetSort(bson.D{{Key: "clientID", Value: -1}}).
		SetProjection(bson.M{"clientID": 1})

	var doc struct {
		ClientID string `bson:"clientID"`
	}
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return doc.ClientID, nil
}

func (r *ClientRepository) FindByClientID(ctx context.Context, clientID string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"clientID": clientID})
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ClientRepository) List(ctx context.Context, archived bool) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"isArchived": archived})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*domain.Client, 0)
	for cur.Next(ctx) {
		c, err := clientFromRaw(cur.Current)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

// Insert stores a new client and sets c.ID.
func (r *ClientRepository) Insert(ctx context.Context, c *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, clientToBSON(c))
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return nil
}

// Replace overwrites the whole stored record, dropping slots no longer
// present on c.
func (r *ClientRepository) Replace(ctx context.Context, c *domain.Client) error {
	oid, err := objectID(c.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, clientToBSON(c))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// UpdateTotalAmount sets only totalAmount, leaving slots untouched.
func (r *ClientRepository) UpdateTotalAmount(ctx context.Context, id string, total int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"totalAmount": total}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
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
		return domain.ErrClientNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes used by the ledger.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "clientID", Value: 1}}},
		{Keys: bson.D{{Key: "clientName", Value: 1}, {Key: "phone", Value: 1}, {Key: "isArchived", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}
