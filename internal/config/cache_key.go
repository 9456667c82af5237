package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// SuggestionKey returns the cache key for a cached suggestion result.
// The snapshot version is part of the key so a rebuild orphans every
// cached result at once; the digest is a stable hash of the query.
func (r *CacheKeyStruct) SuggestionKey(snapshotVersion, queryDigest string) string {
	return fmt.Sprintf("suggest:%s:%s", snapshotVersion, queryDigest)
}

// ImportProgressChannel returns the Redis Pub/Sub channel for import
// progress events consumed by the admin WebSocket stream.
func (r *CacheKeyStruct) ImportProgressChannel() string {
	return "import:progress"
}

var CacheKey = NewCacheKeyStruct()
