package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ClassroomPayloadKey returns the cache key for a classroom's student-facing
// question payload.
func (r *CacheKeyStruct) ClassroomPayloadKey(classroomID string) string {
	return fmt.Sprintf("classroom:%s:payload", classroomID)
}

// ClassroomMonitorChannel returns the Redis PubSub channel name for a
// classroom's live monitor stream.
func (r *CacheKeyStruct) ClassroomMonitorChannel(classroomID string) string {
	return fmt.Sprintf("classroom:%s:monitor", classroomID)
}

var CacheKey = NewCacheKeyStruct()
