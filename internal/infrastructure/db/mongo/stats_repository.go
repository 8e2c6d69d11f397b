package mongo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

// StatsRepository runs the dashboard's counting and aggregation queries.
type StatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Count(ctx context.Context, collection string, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gte": since}
	}
	return r.db.Collection(collection).CountDocuments(ctx, filter)
}

// Revenue sums the price of completed orders created since the given time.
func (r *StatsRepository) Revenue(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: completedSince(since)}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$price"}}}},
	}

	cur, err := r.db.Collection(ports.CollectionOrders).Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, fmt.Errorf("aggregate revenue: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, nil
	}

	var row struct {
		Total float64 `bson:"total"`
	}
	if err := cur.Decode(&row); err != nil {
		return decimal.Zero, fmt.Errorf("decode revenue: %w", err)
	}
	return decimal.NewFromFloat(row.Total).Round(2), nil
}

// DailyRevenue groups completed orders by calendar day in loc. Days without
// orders are absent from the result.
func (r *StatsRepository) DailyRevenue(ctx context.Context, since time.Time, loc *time.Location) ([]ports.DailyRevenue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: completedSince(since)}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$created_at",
				"timezone": mongoTimezone(since.In(loc)),
			}},
			"revenue": bson.M{"$sum": "$price"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := r.db.Collection(ports.CollectionOrders).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily revenue: %w", err)
	}

	var rows []struct {
		Date    string  `bson:"_id"`
		Revenue float64 `bson:"revenue"`
		Orders  int64   `bson:"orders"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode daily revenue: %w", err)
	}

	out := make([]ports.DailyRevenue, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.DailyRevenue{
			Date:    row.Date,
			Revenue: decimal.NewFromFloat(row.Revenue).Round(2),
			Orders:  row.Orders,
		})
	}
	return out, nil
}

func completedSince(since time.Time) bson.M {
	match := bson.M{"payment_status": string(domain.PaymentCompleted)}
	if !since.IsZero() {
		match["created_at"] = bson.M{"$gte": since}
	}
	return match
}

// mongoTimezone names t's zone the way $dateToString accepts it. For the
// process local zone the IANA name is recovered from TZ or /etc/localtime so
// DST shifts inside the range are honoured; the fixed UTC offset is the last
// resort.
func mongoTimezone(t time.Time) string {
	name := t.Location().String()
	if name == "Local" {
		if v, ok := os.LookupEnv("TZ"); ok {
			if zone, ok := zoneFromTZ(v); ok {
				return zone
			}
		} else if target, err := os.Readlink("/etc/localtime"); err == nil {
			if zone, ok := zoneFromLink(target); ok {
				return zone
			}
		}
		return t.Format("-07:00")
	}
	if strings.HasPrefix(name, "/") {
		// TZ held a file path when the process started.
		if zone, ok := zoneFromLink(name); ok {
			return zone
		}
		return t.Format("-07:00")
	}
	if name == "" {
		return t.Format("-07:00")
	}
	return name
}

// zoneFromTZ follows the Go runtime's reading of TZ: empty means UTC and a
// leading colon is ignored. Paths into a zoneinfo tree are reduced to the zone name.
func zoneFromTZ(v string) (string, bool) {
	v = strings.TrimPrefix(v, ":")
	if v == "" {
		return "UTC", true
	}
	if i := strings.LastIndex(v, "zoneinfo/"); i >= 0 {
		v = v[i+len("zoneinfo/"):]
	}
	return validZone(v)
}

// zoneFromLink extracts the zone name from an /etc/localtime symlink target
// such as /usr/share/zoneinfo/Asia/Kolkata.
func zoneFromLink(target string) (string, bool) {
	i := strings.LastIndex(target, "zoneinfo/")
	if i < 0 {
		return "", false
	}
	return validZone(target[i+len("zoneinfo/"):])
}

func validZone(name string) (string, bool) {
	if name == "" || name == "Local" {
		return "", false
	}
	if _, err := time.LoadLocation(name); err != nil {
		return "", false
	}
	return name, true
}

