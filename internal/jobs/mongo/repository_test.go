package mongo

import (
	"testing"

	"github.com/bissquit/job-board/internal/jobs"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter jobs.JobFilter
		want   bson.D
	}{
		{
			name:   "empty filter matches everything",
			filter: jobs.JobFilter{},
			want:   bson.D{},
		},
		{
			name:   "title is a case-insensitive literal",
			filter: jobs.JobFilter{Title: strPtr("c++ (senior)")},
			want: bson.D{
				{Key: "title", Value: bson.Regex{Pattern: `c\+\+ \(senior\)`, Options: "i"}},
			},
		},
		{
			name: "all criteria are combined",
			filter: jobs.JobFilter{
				Title:     strPtr("eng"),
				Location:  strPtr("NYC"),
				MinSalary: floatPtr(60000),
			},
			want: bson.D{
				{Key: "title", Value: bson.Regex{Pattern: "eng", Options: "i"}},
				{Key: "location", Value: bson.Regex{Pattern: "NYC", Options: "i"}},
				{Key: "salary", Value: bson.D{{Key: "$gte", Value: 60000.0}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFilter(tt.filter))
		})
	}
}

func TestBuildUpdate(t *testing.T) {
	update := buildUpdate(jobs.JobPatch{
		Title:  strPtr("Staff Engineer"),
		Salary: floatPtr(0),
	})

	assert.Equal(t, bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: "Staff Engineer"},
		{Key: "salary", Value: 0.0},
	}}}, update)
}
