// Package mongo provides MongoDB implementation of the job repository.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/bissquit/job-board/internal/domain"
	"github.com/bissquit/job-board/internal/jobs"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the jobs collection.
const CollectionName = "jobs"

type jobDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Company     string        `bson:"company"`
	Location    string        `bson:"location"`
	Salary      float64       `bson:"salary"`
	CreatedAt   time.Time     `bson:"createdAt"`
}

func (d *jobDocument) toDomain() domain.Job {
	return domain.Job{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Company:     d.Company,
		Location:    d.Location,
		Salary:      d.Salary,
		CreatedAt:   d.CreatedAt,
	}
}

// Repository implements jobs.Repository using a MongoDB collection.
type Repository struct {
	jobs *mongo.Collection
}

// NewRepository creates a new MongoDB repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{jobs: db.Collection(CollectionName)}
}

// EnsureIndexes creates the indexes used by listing and salary search.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.jobs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "salary", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create jobs indexes: %w", err)
	}
	return nil
}

// CreateJob inserts job and assigns its ID.
func (r *Repository) CreateJob(ctx context.Context, job *domain.Job) error {
	res, err := r.jobs.InsertOne(ctx, jobDocument{
		Title:       job.Title,
		Description: job.Description,
		Company:     job.Company,
		Location:    job.Location,
		Salary:      job.Salary,
		CreatedAt:   job.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("insert job: unexpected id type %T", res.InsertedID)
	}
	job.ID = id.Hex()
	return nil
}

// GetJob retrieves a job by its hex ObjectID.
func (r *Repository) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, jobs.ErrJobNotFound
	}

	var doc jobDocument
	if err := r.jobs.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, jobs.ErrJobNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}

	job := doc.toDomain()
	return &job, nil
}

// ListJobs returns the jobs matching filter, oldest first.
func (r *Repository) ListJobs(ctx context.Context, filter jobs.JobFilter) ([]domain.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.jobs.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	var docs []jobDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	result := make([]domain.Job, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toDomain())
	}
	return result, nil
}

// UpdateJob applies patch with a single findOneAndUpdate and returns the new document.
func (r *Repository) UpdateJob(ctx context.Context, id string, patch jobs.JobPatch) (*domain.Job, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, jobs.ErrJobNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc jobDocument
	err = r.jobs.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, buildUpdate(patch), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, jobs.ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}

	job := doc.toDomain()
	return &job, nil
}

// DeleteJob removes job id.
func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return jobs.ErrJobNotFound
	}

	res, err := r.jobs.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return jobs.ErrJobNotFound
	}
	return nil
}

// buildFilter translates a JobFilter into a query document. Text criteria are quoted
// so user input is matched literally.
func buildFilter(filter jobs.JobFilter) bson.D {
	query := bson.D{}

	if filter.Title != nil {
		query = append(query, bson.E{Key: "title", Value: containsFold(*filter.Title)})
	}
	if filter.Location != nil {
		query = append(query, bson.E{Key: "location", Value: containsFold(*filter.Location)})
	}
	if filter.MinSalary != nil {
		query = append(query, bson.E{Key: "salary", Value: bson.D{{Key: "$gte", Value: *filter.MinSalary}}})
	}

	return query
}

func containsFold(s string) bson.Regex {
	return bson.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// buildUpdate returns a $set document for the fields present in patch.
func buildUpdate(patch jobs.JobPatch) bson.D {
	set := bson.D{}

	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Company != nil {
		set = append(set, bson.E{Key: "company", Value: *patch.Company})
	}
	if patch.Location != nil {
		set = append(set, bson.E{Key: "location", Value: *patch.Location})
	}
	if patch.Salary != nil {
		set = append(set, bson.E{Key: "salary", Value: *patch.Salary})
	}

	return bson.D{{Key: "$set", Value: set}}
}
