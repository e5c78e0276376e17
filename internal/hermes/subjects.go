package hermes

const (
	SubjectRunRequest = "placement.run.request"
	SubjectRunFailed  = "placement.run.failed"

	StreamName   = "PLACEMENT_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectRunCompleted(runID string) string { return "placement.run." + runID + ".completed" }
