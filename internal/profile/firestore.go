package profile

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

const usersCollection = "users"

// FirestoreStore keeps profiles as documents in the users collection.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to Firestore through the Firebase Admin SDK.
// credentialsFile may be empty to use application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Get(ctx context.Context, uid string) (*Profile, error) {
	doc, err := s.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if doc != nil && !doc.Exists() {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var p Profile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &p, nil
}

func (s *FirestoreStore) Set(ctx context.Context, uid string, p Profile) error {
	if _, err := s.client.Collection(usersCollection).Doc(uid).Set(ctx, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Merge(ctx context.Context, uid string, u Update) error {
	fields := u.fields()
	if len(fields) == 0 {
		return nil
	}
	if _, err := s.client.Collection(usersCollection).Doc(uid).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to merge profile: %w", err)
	}
	return nil
}

// Close releases the Firestore connection.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// fields maps the set fields of u to their document keys.
func (u Update) fields() map[string]interface{} {
	m := make(map[string]interface{})
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Email != nil {
		m["email"] = *u.Email
	}
	if u.XP != nil {
		m["xp"] = *u.XP
	}
	if u.Level != nil {
		m["level"] = *u.Level
	}
	if u.CreatedAt != nil {
		m["createdAt"] = *u.CreatedAt
	}
	if u.LastLoginAt != nil {
		m["lastLoginAt"] = *u.LastLoginAt
	}
	if u.UpdatedAt != nil {
		m["updatedAt"] = *u.UpdatedAt
	}
	return m
}
