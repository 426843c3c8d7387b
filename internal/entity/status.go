package entity

type Status string

const (
	Pending    Status = "pending"
	Processing Status = "processing" // outbox events only
	Processed  Status = "processed"  // outbox events only
	Completed  Status = "completed"
	Failed     Status = "failed"
)
