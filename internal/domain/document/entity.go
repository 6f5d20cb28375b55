package document

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("document not found")

type Type string

const (
	TypeCV          Type = "cv"
	TypeCoverLetter Type = "cover_letter"
	TypeCertificate Type = "certificate"
)

func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeCV, TypeCoverLetter, TypeCertificate:
		return Type(s), true
	}
	return "", false
}

type Document struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	Type       Type               `bson:"type" json:"type"`
	FileURL    string             `bson:"fileUrl" json:"fileUrl"`
	UploadedAt time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}

// ValidFileURL accepts an absolute http(s) URL, a file:// reference, or
// a relative path produced by the local upload store.
func ValidFileURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "file://") {
		return len(s) > len("file://")
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		u, err := url.Parse(s)
		return err == nil && u.Host != ""
	}
	// Relative upload paths stay inside the uploads dir.
	return !strings.HasPrefix(s, "/") && !strings.Contains(s, "..")
}

type Repository interface {
	Insert(ctx context.Context, d Document) (Document, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (Document, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}
