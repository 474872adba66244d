package cache

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
)

// DefaultNamespace scopes every store to the Omnicasa response cache.
const DefaultNamespace = "omnicasa_cache"

var namespacePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// HashKey returns the hex MD5 digest of s. Request URLs are hashed into
// fixed-length keys so any backend can store them.
func HashKey(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// NamespacedKey prefixes key with namespace for shared key spaces such as redis.
func NamespacedKey(namespace, key string) string {
	return namespace + ":" + key
}

// ValidNamespace reports whether ns can be used as a directory, table or key prefix.
func ValidNamespace(ns string) bool {
	return namespacePattern.MatchString(ns)
}
