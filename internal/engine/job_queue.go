package engine

import (
	"advanced-melee/internal/dispatch"
)

// Job - запланированное действие актора
type Job struct {
	Request dispatch.ActionRequest
	Due     int // Тик, на котором действие завершается
	// Stage - этап: для притягивания с казнью 0 - тащим, 1 - казним;
	// для похода - число сделанных шагов
	Stage int

	seq   uint64 // порядок постановки, для равных Due
	index int    // индекс в куче (нужен для heap.Fix/Remove)
}

// JobQueue реализует heap.Interface: раньше Due - раньше в очереди
type JobQueue []*Job

func (q JobQueue) Len() int { return len(q) }

func (q JobQueue) Less(i, j int) bool {
	if q[i].Due != q[j].Due {
		return q[i].Due < q[j].Due
	}
	return q[i].seq < q[j].seq
}

func (q JobQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *JobQueue) Push(x interface{}) {
	n := len(*q)
	job := x.(*Job)
	job.index = n
	*q = append(*q, job)
}

func (q *JobQueue) Pop() interface{} {
	old := *q
	n := len(old)
	job := old[n-1]
	old[n-1] = nil // избегаем утечки памяти
	job.index = -1
	*q = old[0 : n-1]
	return job
}
