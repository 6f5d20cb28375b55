package preference

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("preferences not found")

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func ParseFrequency(s string) (Frequency, bool) {
	switch Frequency(s) {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return Frequency(s), true
	}
	return "", false
}

type JobAlerts struct {
	Email     bool      `bson:"email" json:"email"`
	SMS       bool      `bson:"sms" json:"sms"`
	Frequency Frequency `bson:"frequency" json:"frequency"`
}

type Preferences struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User              primitive.ObjectID `bson:"user" json:"user"`
	JobAlerts         JobAlerts          `bson:"jobAlerts" json:"jobAlerts"`
	PreferredJobTypes []string           `bson:"preferredJobTypes,omitempty" json:"preferredJobTypes,omitempty"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Defaults mirror the stored-record defaults: email alerts on, weekly.
func Default(userID primitive.ObjectID) Preferences {
	return Preferences{
		User: userID,
		JobAlerts: JobAlerts{
			Email:     true,
			SMS:       false,
			Frequency: FrequencyWeekly,
		},
	}
}

type Repository interface {
	Upsert(ctx context.Context, p Preferences) (Preferences, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (Preferences, error)
}
