package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vasanthreddy12/e-commerce/configs"
	"github.com/vasanthreddy12/e-commerce/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection = "products"
	cartsCollection    = "carts"
	ordersCollection   = "orders"
	usersCollection    = "users"
)

// NewMongoStores binds one repository to each collection of db.
func NewMongoStores(db *mongo.Database) Stores {
	return Stores{
		Products: &mongoProducts{coll: configs.GetCollection(db, productsCollection)},
		Carts:    &mongoCarts{coll: configs.GetCollection(db, cartsCollection)},
		Orders:   &mongoOrders{coll: configs.GetCollection(db, ordersCollection)},
		Users:    &mongoUsers{coll: configs.GetCollection(db, usersCollection)},
	}
}

// EnsureIndexes creates the indexes the queries rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		productsCollection: {
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		cartsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "razorpayOrderId", Value: 1}}, Options: options.Index().SetSparse(true)},
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

type mongoProducts struct {
	coll *mongo.Collection
}

var productSortFields = map[string]bool{
	"name": true, "price": true, "rating": true, "stock": true, "createdAt": true, "numReviews": true,
}

// parseSort turns "price:desc" into a sort document; unknown fields fall back to newest first.
func parseSort(sort string) bson.D {
	field, dir, _ := strings.Cut(sort, ":")
	if !productSortFields[field] {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	order := 1
	if dir == "desc" {
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}

func (r *mongoProducts) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, notFound(err)
}

func (r *mongoProducts) List(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip, limit := pageBounds(q.Page, q.Limit)
	findOptions := options.Find().SetSort(parseSort(q.Sort)).SetSkip(skip).SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *mongoProducts) Insert(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *mongoProducts) Update(ctx context.Context, id primitive.ObjectID, u models.ProductUpdate) (models.Product, error) {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.Stock != nil {
		set["stock"] = *u.Stock
	}
	if u.Rating != nil {
		set["rating"] = *u.Rating
	}
	if u.NumReviews != nil {
		set["numReviews"] = *u.NumReviews
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var product models.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&product)
	return product, notFound(err)
}

func (r *mongoProducts) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProducts) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 1 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrInsufficientStock
}

func (r *mongoProducts) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": qty}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoCarts struct {
	coll *mongo.Collection
}

func (r *mongoCarts) FindByUser(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	return cart, notFound(err)
}

func (r *mongoCarts) Save(ctx context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	cart.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"user": cart.UserID}, cart, options.Replace().SetUpsert(true))
	return err
}

type mongoOrders struct {
	coll *mongo.Collection
}

func (r *mongoOrders) Insert(ctx context.Context, o *models.Order) error {
	o.Version = 1
	_, err := r.coll.InsertOne(ctx, o)
	return err
}

func (r *mongoOrders) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	return order, notFound(err)
}

func (r *mongoOrders) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (models.Order, error) {
	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"razorpayOrderId": gatewayOrderID}).Decode(&order)
	return order, notFound(err)
}

func (r *mongoOrders) List(ctx context.Context, q models.OrderQuery) ([]models.Order, int64, error) {
	filter := bson.M{}
	if !q.UserID.IsZero() {
		filter["user"] = q.UserID
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip, limit := pageBounds(q.Page, q.Limit)
	cursor, err := r.coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *mongoOrders) Update(ctx context.Context, o *models.Order) error {
	expected := o.Version
	o.Version++
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": o.ID, "version": expected}, o)
	if err != nil {
		o.Version = expected
		return err
	}
	if result.MatchedCount == 1 {
		return nil
	}

	o.Version = expected
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": o.ID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}

type mongoUsers struct {
	coll *mongo.Collection
}

func (r *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, notFound(err)
}

func (r *mongoUsers) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	return user, notFound(err)
}

func (r *mongoUsers) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = strings.ToLower(u.Email)
	_, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *mongoUsers) UpdateName(ctx context.Context, id primitive.ObjectID, name string) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
