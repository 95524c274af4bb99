// Package jsonstore persists the users, products and orders collections as JSON
// arrays of objects in a gocloud.dev blob bucket (a local directory, memory, GCS or S3).
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// Bucket is the subset of *blob.Bucket the store needs.
type Bucket interface {
	ReadAll(ctx context.Context, key string) ([]byte, error)
	WriteAll(ctx context.Context, key string, p []byte, opts *blob.WriterOptions) error
	Delete(ctx context.Context, key string) error
}

// Keys names the object holding each collection.
type Keys struct {
	Users    string
	Products string
	Orders   string
}

// Store serialises access to the collections: reads share a read lock and every
// write session holds the write lock until it has committed.
type Store struct {
	bucket Bucket
	keys   Keys
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewStore creates a store over bucket.
func NewStore(bucket Bucket, keys Keys, logger *slog.Logger) *Store {
	return &Store{
		bucket: bucket,
		keys:   keys,
		logger: logger,
	}
}

// runner executes repository work against a session.
type runner interface {
	view(ctx context.Context, fn func(*session) error) error
	update(ctx context.Context, fn func(*session) error) error
}

func (s *Store) view(ctx context.Context, fn func(*session) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.newSession())
}

func (s *Store) update(ctx context.Context, fn func(*session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.newSession()
	if err := fn(sess); err != nil {
		return err
	}

	return sess.commit(ctx)
}

// txRunner binds repositories to a session already opened by the transaction manager.
type txRunner struct {
	sess *session
}

func (r txRunner) view(_ context.Context, fn func(*session) error) error {
	return fn(r.sess)
}

func (r txRunner) update(_ context.Context, fn func(*session) error) error {
	return fn(r.sess)
}

func (s *Store) newSession() *session {
	return &session{
		store:  s,
		loaded: make(map[string]*collection),
	}
}

// commitOrder writes the history first so a failed order append never leaves
// decremented stock or a cleared cart behind.
func (s *Store) commitOrder() []string {
	return []string{s.keys.Orders, s.keys.Products, s.keys.Users}
}

// session stages changes to each collection it touches, loading each at most once.
type session struct {
	store  *Store
	loaded map[string]*collection
}

// collection is one JSON array. Records are kept raw so entries the current
// code cannot decode survive a rewrite untouched.
type collection struct {
	key        string
	records    []json.RawMessage
	original   []byte
	existed    bool
	unreadable error
	dirty      bool
}

func (sess *session) collection(ctx context.Context, key string) *collection {
	if c, ok := sess.loaded[key]; ok {
		return c
	}

	c := sess.store.load(ctx, key)
	sess.loaded[key] = c

	return c
}

// load reads a collection leniently: a missing object is an empty collection, and
// an unreadable or malformed one reads as empty but refuses writes.
func (s *Store) load(ctx context.Context, key string) *collection {
	c := &collection{key: key}

	data, err := s.bucket.ReadAll(ctx, key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return c
	}
	if err != nil {
		s.logger.Warn("Failed to read collection, treating as empty", slog.String("key", key), slog.Any("error", err))
		c.unreadable = err

		return c
	}

	c.existed = true
	c.original = data
	if len(bytes.TrimSpace(data)) == 0 {
		return c
	}

	if err := json.Unmarshal(data, &c.records); err != nil {
		s.logger.Warn("Malformed collection, treating as empty", slog.String("key", key), slog.Any("error", err))
		c.records = nil
		c.unreadable = err
	}

	return c
}

func (c *collection) ensureWritable() error {
	if c.unreadable != nil {
		return domainerrors.NewStoreIOError(c.unreadable, "refusing to overwrite unreadable collection "+c.key)
	}

	return nil
}

// indexOf returns the position of the first record accepted by match, or -1.
func (c *collection) indexOf(match func(json.RawMessage) bool) int {
	for i, raw := range c.records {
		if match(raw) {
			return i
		}
	}

	return -1
}

func (c *collection) append(v any) error {
	if err := c.ensureWritable(); err != nil {
		return err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode record for %s", c.key)
	}
	c.records = append(c.records, raw)
	c.dirty = true

	return nil
}

func (c *collection) replace(i int, v any) error {
	if err := c.ensureWritable(); err != nil {
		return err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode record for %s", c.key)
	}
	c.records[i] = raw
	c.dirty = true

	return nil
}

func (c *collection) removeAt(i int) error {
	if err := c.ensureWritable(); err != nil {
		return err
	}

	c.records = append(c.records[:i:i], c.records[i+1:]...)
	c.dirty = true

	return nil
}

func (c *collection) encode() ([]byte, error) {
	records := c.records
	if records == nil {
		records = []json.RawMessage{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode collection %s", c.key)
	}

	return data, nil
}

// commit writes every dirty collection. If a write fails, collections already
// written in this session are put back to their previous content.
func (sess *session) commit(ctx context.Context) error {
	var written []*collection

	for _, key := range sess.store.commitOrder() {
		c, ok := sess.loaded[key]
		if !ok || !c.dirty {
			continue
		}

		data, err := c.encode()
		if err == nil {
			err = sess.store.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: "application/json"})
		}
		if err != nil {
			sess.restore(ctx, written)

			return domainerrors.NewStoreIOError(errors.WithStack(err), "write "+key)
		}
		written = append(written, c)
	}

	return nil
}

func (sess *session) restore(ctx context.Context, written []*collection) {
	ctx = context.WithoutCancel(ctx)
	for _, c := range written {
		var err error
		if c.existed {
			err = sess.store.bucket.WriteAll(ctx, c.key, c.original, &blob.WriterOptions{ContentType: "application/json"})
		} else {
			err = sess.store.bucket.Delete(ctx, c.key)
		}
		if err != nil {
			sess.store.logger.Error("Failed to restore collection after aborted commit",
				slog.String("key", c.key),
				slog.Any("error", err),
			)
		}
	}
}
