package job

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("job not found")

type Type string

const (
	TypeFullTime   Type = "Full-time"
	TypePartTime   Type = "Part-time"
	TypeContract   Type = "Contract"
	TypeInternship Type = "Internship"
	TypeTemporary  Type = "Temporary"
)

func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship, TypeTemporary:
		return Type(s), true
	}
	return "", false
}

type Company struct {
	Name     string `bson:"name" json:"name"`
	Location string `bson:"location" json:"location"`
	Website  string `bson:"website" json:"website"`
}

type Job struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title               string             `bson:"title" json:"title"`
	Description         string             `bson:"description" json:"description"`
	Category            string             `bson:"category,omitempty" json:"category,omitempty"`
	Company             Company            `bson:"company" json:"company"`
	Salary              float64            `bson:"salary" json:"salary"`
	JobType             Type               `bson:"jobType" json:"jobType"`
	Featured            bool               `bson:"featured" json:"featured"`
	Remote              bool               `bson:"remote" json:"remote"`
	Requirements        []string           `bson:"requirement" json:"requirement"`
	Benefits            []string           `bson:"benefits" json:"benefits"`
	ApplicationDeadline *time.Time         `bson:"applicationDeadline,omitempty" json:"applicationDeadline,omitempty"`
	DatePosted          time.Time          `bson:"datePosted" json:"datePosted"`
	CreatedBy           primitive.ObjectID `bson:"createdBy" json:"createdBy"`
}

// CategoryCount is one bucket of the categories aggregation.
type CategoryCount struct {
	Category string `bson:"_id" json:"category"`
	TotalJob int64  `bson:"totalJob" json:"totalJob"`
}
