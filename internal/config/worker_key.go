package config

type WorkerKeyStruct struct {
	PersistTrackingQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistTrackingQueue: "persist_tracking_queue",
}
