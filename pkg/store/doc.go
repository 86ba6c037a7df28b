// Package store provides string-keyed blob storage for saved layouts.
//
// All backends implement [Store]:
//
//   - [MemoryStore]: process-local map, for tests and one-shot commands
//   - [FileStore]: one JSON file per key under a directory, sharded by hash
//   - [RedisStore]: a redis server via go-redis
//   - [MongoStore]: one document per key in a MongoDB collection
//   - [SQLiteStore]: a single kv table in a SQLite file
//
// Use [Open] to build a backend from a [Config]. [Scoped] prefixes every key
// so several named boards can share one backend.
//
// Remote backends wrap transient failures with [Retryable] and run each
// call through [RetryWithBackoff].
package store
