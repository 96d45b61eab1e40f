package requests

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectID parses a hex object id; a malformed one yields notFound so that ids
// that cannot exist answer the same way as ids that do not.
func ObjectID(raw string, notFound error) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return id, nil
}

// Page reads ?page= and ?limit=, falling back to 1 and 10.
func Page(c *fiber.Ctx) (page, limit int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil {
		page = 1
	}
	limit, err = strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil {
		limit = 10
	}
	return page, limit
}
