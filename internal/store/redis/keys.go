package redis

// KeyPrefixSnapshot is the prefix for public wishlist snapshot keys.
const KeyPrefixSnapshot = "heywish:public:"

// SnapshotKey returns the Redis key for a share token's snapshot.
func SnapshotKey(token string) string {
	return KeyPrefixSnapshot + token
}
