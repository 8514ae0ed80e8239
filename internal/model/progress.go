package model

import "time"

// ProgressStatus is the stage reported by an engine progress callback
type ProgressStatus string

const (
	ProgressStatusStarting       ProgressStatus = "starting"
	ProgressStatusDownloading    ProgressStatus = "downloading"
	ProgressStatusPostProcessing ProgressStatus = "post_processing"
	ProgressStatusFinished       ProgressStatus = "finished"
	ProgressStatusError          ProgressStatus = "error"
)

// ProgressUpdate is one engine progress callback
type ProgressUpdate struct {
	Status          ProgressStatus
	Filename        string
	DownloadedBytes int64
	TotalBytes      int64         // 0 when unknown
	Speed           float64       // bytes per second, 0 when unknown
	ETA             time.Duration // <= 0 when unknown
}

// ProgressFunc receives progress callbacks synchronously from the engine call
type ProgressFunc func(update ProgressUpdate)
