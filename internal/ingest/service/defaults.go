package service

import "time"

const (
	defaultWorkerCount = 20

	randomHeightLimit = 5000

	transactionFlushThreshold = 1000
	outputFlushThreshold      = 10_000
	inputFlushThreshold       = 10_000

	idleSleepDuration      = 5 * time.Second
	postBatchSleepDuration = 5 * time.Second

	blockBatcherCapacity      = 1000
	blockBatcherFlushInterval = 30 * time.Second
	blockBatcherFlushRate     = 20
)
