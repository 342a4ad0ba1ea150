package topics

const (
	// Kafka
	BetSubmitted = "bet_submitted"

	// Redis Pub/Sub
	BetSubmissionsBroadcast = "bet_submissions_broadcast"
)
