package redisx

import "time"

const (
	// Whole catalog as one JSON array, rewritten wholesale on every
	// mutation. Last writer wins.
	KeyCatalog = "bakery:products"

	// Published (empty payload) after every catalog save. Watchers also
	// poll KeyCatalog so a missed publish only delays visibility.
	ChanCatalogChanged = "bakery:products:changed"

	// Admin session: flag + login timestamp (unix millis). The session
	// is valid only while the flag is set AND the stamp is under 24h old.
	KeyAdminAuthenticated = "bakery:admin:authenticated"
	KeyAdminLoginTime     = "bakery:admin:login_time"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "bakery:dedup:%s:%s"
)

var (
	TTLDedup   = 48 * time.Hour
	SessionTTL = 24 * time.Hour
)
