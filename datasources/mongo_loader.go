/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package datasources

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/records"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultMongoPort = 27017

// ConnectionCache keeps one client per server address. A mongo client pools
// its own connections, so clients are shared by every loader that reaches
// the same address. It is safe for concurrent use.
type ConnectionCache struct {
	mu      sync.Mutex
	clients map[string]*mongo.Client
}

// NewConnectionCache creates an empty cache.
func NewConnectionCache() *ConnectionCache {
	return &ConnectionCache{clients: make(map[string]*mongo.Client)}
}

// Get returns the client for host:port, connecting on first use.
func (c *ConnectionCache) Get(host string, port int) (*mongo.Client, error) {
	if port == 0 {
		port = defaultMongoPort
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	c.mu.Lock()
	defer c.mu.Unlock()
	if client, ok := c.clients[addr]; ok {
		return client, nil
	}

	log.Printf("[MONGO] Connecting to %s", addr)
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://" + addr))
	if err != nil {
		return nil, fmt.Errorf("connect mongo %s: %w", addr, err)
	}
	c.clients[addr] = client
	return client, nil
}

// Len returns the number of cached clients.
func (c *ConnectionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

// Close disconnects and forgets every client. The first error is returned
// after all clients have been disconnected.
func (c *ConnectionCache) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var firstErr error
	for addr, client := range c.clients {
		if err := client.Disconnect(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("disconnect mongo %s: %w", addr, err)
		}
		delete(c.clients, addr)
	}
	return firstErr
}

// MongoLoader implements RecordLoader for a MongoDB collection.
//
// Required config keys:
//   - host: Server host
//   - database: Database name
//   - collection: Collection name
//
// Optional config keys:
//   - port: Server port (default: 27017)
//   - filter: Extended JSON query filter (default: all documents)
//   - timeout: Query timeout as a Go duration (default: "30s")
//
// When a column map is given only its fields are fetched. "_id" is left
// out unless it is a column.
type MongoLoader struct {
	cache *ConnectionCache
}

// NewMongoLoader creates a loader sharing clients through cache.
func NewMongoLoader(cache *ConnectionCache) *MongoLoader {
	return &MongoLoader{cache: cache}
}

// SourceType returns "mongo".
func (l *MongoLoader) SourceType() string {
	return "mongo"
}

// Load runs a find on the configured collection.
func (l *MongoLoader) Load(ctx context.Context, config map[string]string, columns *headers.ColumnMap) ([]records.Record, error) {
	host, database, collection := config["host"], config["database"], config["collection"]
	if host == "" || database == "" || collection == "" {
		return nil, fmt.Errorf("host, database and collection are required")
	}

	port := 0
	if p := config["port"]; p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", p, err)
		}
		port = n
	}

	timeout := 30 * time.Second
	if t := config["timeout"]; t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", t, err)
		}
		timeout = d
	}

	filter, err := parseFilter(config["filter"])
	if err != nil {
		return nil, err
	}

	client, err := l.cache.Get(host, port)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Find()
	if projection := projectionFor(columns); projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := client.Database(database).Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s.%s: %w", database, collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read %s.%s: %w", database, collection, err)
	}
	log.Printf("[MONGO] Loaded %d documents from %s.%s", len(docs), database, collection)

	out := make([]records.Record, 0, len(docs))
	for i, doc := range docs {
		rec, err := recordFromDocument(doc, columns)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// parseFilter parses an Extended JSON filter; empty means all documents.
func parseFilter(s string) (bson.D, error) {
	if s == "" {
		return bson.D{}, nil
	}
	var filter bson.D
	if err := bson.UnmarshalExtJSON([]byte(s), false, &filter); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return filter, nil
}

// projectionFor includes every column field and excludes _id unless it is
// a column.
func projectionFor(columns *headers.ColumnMap) bson.D {
	if columns == nil {
		return nil
	}
	projection := bson.D{}
	for _, f := range columns.Fields() {
		projection = append(projection, bson.E{Key: f, Value: 1})
	}
	if !columns.Has("_id") {
		projection = append(projection, bson.E{Key: "_id", Value: 0})
	}
	return projection
}

// recordFromDocument maps BSON values onto record scalars: dates become
// time.Time, object ids and decimals become strings.
func recordFromDocument(doc bson.M, columns *headers.ColumnMap) (records.Record, error) {
	rec := make(records.Record, len(doc))
	for k, v := range doc {
		switch x := v.(type) {
		case bson.DateTime:
			rec[k] = x.Time().UTC()
		case bson.ObjectID:
			rec[k] = x.Hex()
		case bson.Decimal128:
			rec[k] = x.String()
		case bson.Null, bson.Undefined:
			rec[k] = nil
		default:
			rec[k] = v
		}
	}
	if err := convertRecord(rec, columns); err != nil {
		return nil, err
	}
	return rec, nil
}
