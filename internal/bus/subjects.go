package bus

const (
	SubjectRefreshRequest = "scope.channel.refresh.request"
	SubjectCrawlStats     = "scope.channel.crawl.stats"

	StreamName   = "SCOPE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

// StreamSubjects covers every subject the service publishes.
func StreamSubjects() []string {
	return []string{"scope.simulation.>", "scope.channel.>"}
}

func SubjectSimulationCompleted(runID string) string { return "scope.simulation." + runID + ".completed" }
func SubjectSimulationDegraded(runID string) string  { return "scope.simulation." + runID + ".degraded" }
func SubjectComparisonCompleted(runID string) string { return "scope.simulation." + runID + ".compared" }

func SubjectChannelRefreshed(channelID string) string  { return "scope.channel." + channelID + ".refreshed" }
func SubjectChannelDiscovered(channelID string) string { return "scope.channel." + channelID + ".discovered" }
