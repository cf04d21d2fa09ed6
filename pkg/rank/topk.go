package rank

import "github.com/google/btree"

const topKDegree = 8

// TopK keeps the best maxSize items seen so far under less, where less(a, b)
// means a ranks ahead of b. Items that compare equal replace each other.
type TopK[T any] struct {
	tree    *btree.BTreeG[T]
	less    func(a, b T) bool
	maxSize int
}

func NewTopK[T any](maxSize int, less func(a, b T) bool) *TopK[T] {
	return &TopK[T]{
		tree:    btree.NewG(topKDegree, btree.LessFunc[T](less)),
		less:    less,
		maxSize: maxSize,
	}
}

// Insert adds item if the collection is below capacity or item outranks the
// current worst member, which is then evicted. It reports whether item was
// kept.
func (k *TopK[T]) Insert(item T) bool {
	if k.maxSize <= 0 {
		return false
	}
	if k.tree.Has(item) || k.tree.Len() < k.maxSize {
		k.tree.ReplaceOrInsert(item)
		return true
	}
	worst, _ := k.tree.Max()
	if !k.less(item, worst) {
		return false
	}
	k.tree.DeleteMax()
	k.tree.ReplaceOrInsert(item)
	return true
}

// Top returns up to n members, best first.
func (k *TopK[T]) Top(n int) []T {
	if n <= 0 {
		return nil
	}
	out := make([]T, 0, min(n, k.tree.Len()))
	k.tree.Ascend(func(item T) bool {
		out = append(out, item)
		return len(out) < n
	})
	return out
}

func (k *TopK[T]) Len() int { return k.tree.Len() }

// Worst returns the lowest-ranked member.
func (k *TopK[T]) Worst() (T, bool) { return k.tree.Max() }
