package source

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// etcdEntry is the JSON value stored per domain. Disabled entries stay in
// etcd but are excluded from runs.
type etcdEntry struct {
	Enabled bool      `json:"enabled"`
	AddedAt time.Time `json:"added_at"`
}

func unmarshalEtcdEntry(raw []byte) (etcdEntry, error) {
	var entry etcdEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return etcdEntry{}, fmt.Errorf("decode etcd value: %w", err)
	}
	return entry, nil
}

// keyForDomain builds the etcd key for a domain: the prefix followed by the
// name's parts in reverse, so related names share a subtree
// ("/domainwatch/domains/com/example").
func keyForDomain(prefix, domain string) string {
	prefix = strings.TrimRight(prefix, "/")
	trimmed := strings.TrimSuffix(strings.TrimSpace(domain), ".")
	parts := strings.Split(trimmed, ".")
	reverse(parts)
	return fmt.Sprintf("%s/%s", prefix, strings.Join(parts, "/"))
}

// domainFromKey inverts keyForDomain.
func domainFromKey(prefix, key string) string {
	prefix = strings.TrimRight(prefix, "/")
	path := strings.TrimPrefix(key, prefix)
	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")
	reverse(parts)
	return strings.Join(parts, ".")
}

func reverse(parts []string) {
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
}
