package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type OfferRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewOfferRepository(db *mongo.Database, log *logger.Logger) *OfferRepository {
	return &OfferRepository{
		collection: db.Collection("offers"),
		logger:     log.Named("OfferRepository"),
	}
}

func (r *OfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, fromDomainOffer(offer)); err != nil {
		r.logger.Error("Database error during offer creation", zap.String("offerID", offer.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *OfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	offer.UpdatedAt = time.Now()
	doc := fromDomainOffer(offer)

	update := bson.M{
		"$set": bson.M{
			"product_name":        doc.Name,
			"product_description": doc.Description,
			"product_price":       doc.Price,
			"product_details":     doc.Details,
			"product_image":       doc.ImageURL,
			"updated_at":          doc.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		r.logger.Error("Database error during offer update", zap.String("offerID", offer.ID), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

// Delete is a find-and-remove: nothing removed means the offer was absent.
func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Database error during offer deletion", zap.String("offerID", id), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	var doc offerDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferNotFound
		}
		r.logger.Error("Database error fetching offer", zap.String("offerID", id), zap.Error(err))
		return nil, err
	}
	return doc.toDomain(), nil
}

// Search runs the paginated, projected query and a separate count of every
// document matching the filter, ignoring pagination.
func (r *OfferRepository) Search(ctx context.Context, query domain.OfferQuery) ([]*domain.OfferSummary, int64, error) {
	filter := buildOfferFilter(query)

	findOptions := options.Find().
		SetSkip(query.Offset()).
		SetLimit(query.PageLimit).
		SetProjection(bson.M{"product_name": 1, "product_price": 1})
	if sort := buildOfferSort(query); sort != nil {
		findOptions.SetSort(sort)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		r.logger.Error("Database error searching offers", zap.Error(err))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []*offerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Error decoding searched offers", zap.Error(err))
		return nil, 0, err
	}

	summaries := make([]*domain.OfferSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, &domain.OfferSummary{
			ID:    doc.ID,
			Name:  doc.Name,
			Price: doc.Price,
		})
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Database error counting offers", zap.Error(err))
		return nil, 0, err
	}

	return summaries, count, nil
}

// buildOfferFilter translates the query spec into a mongo filter. Title is a
// case-insensitive substring match; price bounds are inclusive and combine
// into one range when both are present.
func buildOfferFilter(query domain.OfferQuery) bson.M {
	filter := bson.M{}
	if query.Title != "" {
		// QuoteMeta keeps the title filter a literal substring match.
		filter["product_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(query.Title), Options: "i"}
	}
	price := bson.M{}
	if query.PriceMin != nil {
		price["$gte"] = *query.PriceMin
	}
	if query.PriceMax != nil {
		price["$lte"] = *query.PriceMax
	}
	if len(price) > 0 {
		filter["product_price"] = price
	}
	return filter
}

func buildOfferSort(query domain.OfferQuery) bson.D {
	switch query.Sort {
	case domain.SortPriceAsc:
		return bson.D{{Key: "product_price", Value: 1}}
	case domain.SortPriceDesc:
		return bson.D{{Key: "product_price", Value: -1}}
	default:
		return nil
	}
}
