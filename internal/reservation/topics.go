package reservation

const (
	TopicReservationCreated   = "reservation.created"
	TopicReservationCancelled = "reservation.cancelled"
)

// PartitionKey keeps all events for one reservation in order.
func PartitionKey(ref string) []byte { return []byte(ref) }
