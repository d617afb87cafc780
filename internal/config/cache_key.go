package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CatalogPayloadKey returns the cache key for a skill's sanitized catalog payload.
func (r *CacheKeyStruct) CatalogPayloadKey(skill string) string {
	return fmt.Sprintf("catalog:%s:payload", skill)
}

// SessionSnapshotKey returns the cache key for a user's in-progress session snapshot.
func (r *CacheKeyStruct) SessionSnapshotKey(skill string, userID int) string {
	return fmt.Sprintf("user:%d:skill:%s:session", userID, skill)
}

// SessionChannel returns the Redis PubSub channel for a user's session events.
func (r *CacheKeyStruct) SessionChannel(skill string, userID int) string {
	return fmt.Sprintf("user:%d:skill:%s:events", userID, skill)
}

var CacheKey = NewCacheKeyStruct()
