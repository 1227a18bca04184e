package queue

import (
	"github.com/hibiken/asynq"
)

// TaskTypeGiftTotalsSweep - периодическая задача, которая заново ставит
// gift:completed для завершенных подарков, не попавших в итоги.
const TaskTypeGiftTotalsSweep = "gift:totals-sweep"

func NewGiftTotalsSweepTask() *asynq.Task {
	return asynq.NewTask(TaskTypeGiftTotalsSweep, nil)
}
