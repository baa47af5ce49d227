package scheduler

// taskHeap is a container/heap.Interface over *Task, min-ordered on Due
// with ties broken by insertion sequence — the FIFO stability spec §9
// asks implementations to pick and document (this one documents: stable).
type taskHeap []*Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	d := h[i].Due.Sub(h[j].Due)
	if d != 0 {
		return d < 0
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*Task))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
