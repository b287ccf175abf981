// Package firestore implements the remote document store on Cloud Firestore.
//
// Documents live under a per-user tree:
//
//	users/{uid}/profile/data
//	users/{uid}/days/{date}
//	users/{uid}/weight/{date}
//	users/{uid}/foods/{localId}
//
// Every write is a full document overwrite; merge decisions happen in the
// use case layer, never here.
package firestore

import (
	"context"
	"log/slog"
	"strconv"

	"bodybalance/config"
	"bodybalance/internal/domain/service"

	fs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection   = "users"
	profileCollection = "profile"
	profileDocID      = "data"
	daysCollection    = "days"
	weightCollection  = "weight"
	foodsCollection   = "foods"
)

// Store implements service.RemoteStore backed by a Firestore client.
type Store struct {
	client *fs.Client
	logger *slog.Logger
}

// New initializes the Firebase app and opens a Firestore client.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase config is required")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create firestore client")
	}

	logger.Info("firestore client initialized", slog.String("projectId", cfg.Firebase.ProjectID))

	return &Store{client: client, logger: logger}, nil
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) userDoc(userID string) *fs.DocumentRef {
	return s.client.Collection(usersCollection).Doc(userID)
}

// SetProfile overwrites the singleton profile document.
func (s *Store) SetProfile(ctx context.Context, userID string, doc *service.ProfileDocument) error {
	_, err := s.userDoc(userID).Collection(profileCollection).Doc(profileDocID).Set(ctx, doc)
	if err != nil {
		return errors.Wrap(err, "failed to set profile document")
	}

	return nil
}

// GetProfile retrieves the profile document.
func (s *Store) GetProfile(ctx context.Context, userID string) (*service.ProfileDocument, error) {
	snap, err := s.userDoc(userID).Collection(profileCollection).Doc(profileDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, service.ErrDocumentNotFound
		}

		return nil, errors.Wrap(err, "failed to get profile document")
	}

	var doc service.ProfileDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode profile document")
	}

	return &doc, nil
}

// SetDay overwrites the day document for a date.
func (s *Store) SetDay(ctx context.Context, userID, date string, doc *service.DayDocument) error {
	_, err := s.userDoc(userID).Collection(daysCollection).Doc(date).Set(ctx, doc)
	if err != nil {
		return errors.Wrapf(err, "failed to set day document %s", date)
	}

	return nil
}

// ListDays retrieves all day documents for the user.
func (s *Store) ListDays(ctx context.Context, userID string) ([]*service.DayDocument, error) {
	iter := s.userDoc(userID).Collection(daysCollection).Documents(ctx)
	defer iter.Stop()

	var docs []*service.DayDocument

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate day documents")
		}

		var doc service.DayDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "failed to decode day document %s", snap.Ref.ID)
		}

		docs = append(docs, &doc)
	}

	return docs, nil
}

// SetWeight overwrites the weight document for a date.
func (s *Store) SetWeight(ctx context.Context, userID, date string, doc *service.WeightDocument) error {
	_, err := s.userDoc(userID).Collection(weightCollection).Doc(date).Set(ctx, doc)
	if err != nil {
		return errors.Wrapf(err, "failed to set weight document %s", date)
	}

	return nil
}

// ListWeights retrieves all weight documents for the user.
func (s *Store) ListWeights(ctx context.Context, userID string) ([]*service.WeightDocument, error) {
	iter := s.userDoc(userID).Collection(weightCollection).Documents(ctx)
	defer iter.Stop()

	var docs []*service.WeightDocument

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate weight documents")
		}

		var doc service.WeightDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "failed to decode weight document %s", snap.Ref.ID)
		}

		docs = append(docs, &doc)
	}

	return docs, nil
}

// DeleteWeight removes the weight document for a date. Deleting a missing
// document is not an error.
func (s *Store) DeleteWeight(ctx context.Context, userID, date string) error {
	_, err := s.userDoc(userID).Collection(weightCollection).Doc(date).Delete(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to delete weight document %s", date)
	}

	return nil
}

// SetFood overwrites the food document keyed by the local id.
func (s *Store) SetFood(ctx context.Context, userID string, localID uint, doc *service.FoodDocument) error {
	docID := strconv.FormatUint(uint64(localID), 10)

	_, err := s.userDoc(userID).Collection(foodsCollection).Doc(docID).Set(ctx, doc)
	if err != nil {
		return errors.Wrapf(err, "failed to set food document %s", docID)
	}

	return nil
}

// ListFoods retrieves all user-authored food documents.
func (s *Store) ListFoods(ctx context.Context, userID string) ([]*service.FoodDocument, error) {
	iter := s.userDoc(userID).Collection(foodsCollection).Documents(ctx)
	defer iter.Stop()

	var docs []*service.FoodDocument

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate food documents")
		}

		var doc service.FoodDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "failed to decode food document %s", snap.Ref.ID)
		}

		docs = append(docs, &doc)
	}

	return docs, nil
}
